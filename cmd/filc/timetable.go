package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/filc/internal/config"
	"github.com/verte-zerg/filc/internal/model"
	"github.com/verte-zerg/filc/internal/render"
	"github.com/verte-zerg/filc/internal/timetable"
	"github.com/verte-zerg/filc/internal/tui"
)

var (
	ttWeek        bool
	ttCurrent     bool
	ttInteractive bool
	ttFirstSlot   = "auto"
	ttLookahead   = timetable.DefaultLookaheadWeeks
)

func newTimetableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tt [day]",
		Aliases: []string{"timetable"},
		Short:   "Show the timetable of a day or week",
		Long: `Show the timetable of a day or week.

day may be YYYY-MM-DD, MM-DD, DD or a day shift such as -1 or +7.
Without a day the next school day is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTimetableCmd,
	}
	cmd.Flags().BoolVarP(&ttWeek, "week", "w", false, "show the whole week")
	cmd.Flags().BoolVarP(&ttCurrent, "current", "c", false, "show the current and the next lesson only")
	cmd.Flags().BoolVarP(&ttInteractive, "interactive", "i", false, "browse days interactively")
	cmd.Flags().StringVar(&ttFirstSlot, "first-slot", ttFirstSlot, "number of the first period: auto, 0 or 1")
	cmd.Flags().IntVar(&ttLookahead, "lookahead", ttLookahead, "weeks searched for the next school day")
	return cmd
}

func runTimetableCmd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	applyStringConfig(cmd, "first-slot", &ttFirstSlot, a.cfg.Timetable.FirstSlot)
	applyIntConfig(cmd, "lookahead", &ttLookahead, a.cfg.Timetable.LookaheadWeeks)
	base, err := config.TimetableConfig{FirstSlot: &ttFirstSlot}.SlotBase()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	day, err := a.resolveDay(ctx, args, ttLookahead)
	if err != nil {
		return err
	}
	a.log.Info("showing timetable", zap.Time("day", day), zap.Bool("week", ttWeek))

	if ttInteractive {
		m := tui.NewModel(ctx, tui.Config{
			Provider: a.src,
			Day:      day,
			Week:     ttWeek,
			SlotBase: base,
			Styler:   render.NewStyler(os.Stdout, !a.env.ColorDisabled()),
			Log:      a.log,
		})
		program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	}

	week, err := a.src.Timetable(ctx, day, true)
	if err != nil {
		return fmt.Errorf("failed to fetch timetable: %w", err)
	}
	lessons, err := a.src.Timetable(ctx, day, false)
	if err != nil {
		return fmt.Errorf("failed to fetch timetable: %w", err)
	}

	if ttCurrent {
		return printCurrent(a.out, week, lessons, a.now, machineFlag)
	}

	opts := timetable.Options{Now: a.now, SlotBase: base}
	if ttWeek {
		return printGrid(a.out, timetable.BuildWeekGrid(week, opts), a.styler, machineFlag,
			"no lessons recorded this week")
	}
	tests, err := a.src.Tests(ctx, day, day)
	if err != nil {
		return fmt.Errorf("failed to fetch announced tests: %w", err)
	}
	return printGrid(a.out, timetable.BuildDayGrid(lessons, week, tests, opts), a.styler, machineFlag,
		fmt.Sprintf("no lessons recorded on %s", timetable.DayTitle(day)))
}

// printGrid renders grid, or its title and the empty message when no lesson
// row is left, e.g. a week holding only holiday entries.
func printGrid(w io.Writer, grid model.Grid, st render.Styler, machine bool, empty string) error {
	if machine || !grid.Empty() {
		return render.Grid(w, grid, st, render.Options{Machine: machine})
	}
	if grid.Title != "" {
		if _, err := fmt.Fprintln(w, st.Title(grid.Title)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, empty)
	return err
}

// printCurrent writes the next lesson of the week as "<mins>m -> <subject>"
// and each lesson in progress as "<subject>, <mins>m". Machine mode writes
// [minutes, lesson] pairs instead.
func printCurrent(w io.Writer, week, day []model.Lesson, now time.Time, machine bool) error {
	if next, ok := timetable.NextLesson(week, now); ok {
		mins := timetable.MinutesUntil(next.Start, now)
		if err := printCurrentLine(w, machine, mins, next, fmt.Sprintf("%dm -> %s", mins, next.Subject)); err != nil {
			return err
		}
	}
	for _, lsn := range timetable.CurrentLessons(day, now) {
		mins := timetable.MinutesUntil(lsn.End, now)
		if err := printCurrentLine(w, machine, mins, lsn, fmt.Sprintf("%s, %dm", lsn.Subject, mins)); err != nil {
			return err
		}
	}
	return nil
}

func printCurrentLine(w io.Writer, machine bool, mins int, lsn model.Lesson, text string) error {
	if machine {
		return render.JSON(w, []any{mins, lsn})
	}
	_, err := fmt.Fprintln(w, text)
	return err
}
