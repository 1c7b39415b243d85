package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/filc/internal/evals"
	"github.com/verte-zerg/filc/internal/model"
	"github.com/verte-zerg/filc/internal/render"
)

const (
	evalDateLayout = "2006-01-02 15:04"
	testDateLayout = "2006-01-02"
)

var (
	evalsSubject    string
	evalsFilter     string
	evalsAverage    bool
	evalsGhosts     []int
	evalsPlot       bool
	evalsPlotWidth  int
	evalsPlotHeight = defaultPlotHeight
	evalsReverse    bool
	evalsNumber     int

	testsSubject string
	testsPast    bool
	testsReverse bool
	testsNumber  int
)

var (
	evalHeaders = []string{"TOPIC", "GRADE", "SUBJECT", "MODE", "TEACHER", "DATE"}
	testHeaders = []string{"DATE", "SLOT", "SUBJECT", "MODE", "TOPIC"}
)

func newEvalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "evals",
		Aliases: []string{"grades"},
		Short:   "List grades or compute their average",
		Args:    cobra.NoArgs,
		RunE:    runEvalsCmd,
	}
	cmd.Flags().StringVarP(&evalsSubject, "subject", "s", "", "only subjects containing this text")
	cmd.Flags().StringVarP(&evalsFilter, "filter", "f", "", "only kinds, modes or topics containing this text")
	cmd.Flags().BoolVarP(&evalsAverage, "average", "a", false, "print the weighted average")
	cmd.Flags().IntSliceVarP(&evalsGhosts, "ghost", "g", nil, "hypothetical grade (1-5) added to the average, repeatable")
	cmd.Flags().BoolVarP(&evalsPlot, "plot", "p", false, "plot the running average (with --average)")
	cmd.Flags().IntVar(&evalsPlotWidth, "plot-width", 0, "chart width, 0 fits the terminal")
	cmd.Flags().IntVar(&evalsPlotHeight, "plot-height", evalsPlotHeight, "chart height")
	cmd.Flags().BoolVarP(&evalsReverse, "reverse", "r", false, "oldest first")
	cmd.Flags().IntVarP(&evalsNumber, "number", "n", 0, "print at most this many rows")
	return cmd
}

func runEvalsCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	applyIntConfig(cmd, "plot-width", &evalsPlotWidth, a.cfg.Charts.Width)
	applyIntConfig(cmd, "plot-height", &evalsPlotHeight, a.cfg.Charts.Height)

	records, err := a.src.Evaluations(cmd.Context(), time.Time{}, time.Time{})
	if err != nil {
		return fmt.Errorf("failed to fetch evaluations: %w", err)
	}
	if evalsFilter != "" {
		records = evals.FilterByKindOrTitle(records, evalsFilter)
	}
	if evalsSubject != "" {
		records = evals.FilterBySubject(records, evalsSubject)
	}
	for _, g := range evalsGhosts {
		if !evals.ValidGhost(g) {
			a.log.Warn("ignoring ghost grade outside 1-5", zap.Int("ghost", g))
		}
	}

	if evalsAverage {
		return printAverage(a, records)
	}
	if machineFlag {
		return render.JSON(a.out, render.Limit(records, evalsReverse, evalsNumber))
	}
	rows := make([][]string, len(records))
	for i, e := range records {
		rows[i] = evalRow(e)
	}
	return render.Table(a.out, evalHeaders, rows, render.Options{Reverse: evalsReverse, Number: evalsNumber})
}

func printAverage(a *app, records []model.Evaluation) error {
	avg, err := evals.Average(records, evalsGhosts)
	if errors.Is(err, evals.ErrEmptyAverage) {
		if machineFlag {
			return render.JSON(a.out, map[string]any{"average": nil})
		}
		_, err := fmt.Fprintln(a.out, "no grades to average")
		return err
	}
	if err != nil {
		return err
	}
	if machineFlag {
		return render.JSON(a.out, map[string]any{"average": avg})
	}
	if _, err := fmt.Fprintf(a.out, "Average: %.2f\n", avg); err != nil {
		return err
	}
	if !evalsPlot {
		return nil
	}
	return render.Chart(a.out, "", evals.Trend(records, evalsGhosts), evalsPlotWidth, evalsPlotHeight)
}

// evalRow formats an evaluation under evalHeaders. Text-only grades show their text.
func evalRow(e model.Evaluation) []string {
	grade := e.Text
	if e.Numeric() {
		grade = strconv.Itoa(e.Value)
	}
	return []string{e.Topic, grade, e.Subject, e.Mode, e.Teacher, e.CreatedAt.Format(evalDateLayout)}
}

func newTestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tests",
		Short: "List announced tests",
		Args:  cobra.NoArgs,
		RunE:  runTestsCmd,
	}
	cmd.Flags().StringVarP(&testsSubject, "subject", "s", "", "only subjects containing this text")
	cmd.Flags().BoolVarP(&testsPast, "past", "p", false, "include tests that already took place")
	cmd.Flags().BoolVarP(&testsReverse, "reverse", "r", false, "latest first")
	cmd.Flags().IntVarP(&testsNumber, "number", "n", 0, "print at most this many rows")
	return cmd
}

func runTestsCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	var from time.Time
	if !testsPast {
		from = model.DateOf(a.now)
	}
	tests, err := a.src.Tests(cmd.Context(), from, time.Time{})
	if err != nil {
		return fmt.Errorf("failed to fetch announced tests: %w", err)
	}
	tests = filterTests(tests, testsSubject)

	if machineFlag {
		return render.JSON(a.out, render.Limit(tests, testsReverse, testsNumber))
	}
	if len(tests) == 0 {
		_, err := fmt.Fprintln(a.out, "no announced tests")
		return err
	}
	rows := make([][]string, len(tests))
	for i, t := range tests {
		rows[i] = []string{t.Date.Format(testDateLayout), strconv.Itoa(t.Slot), t.Subject, t.Mode, t.Topic}
	}
	return render.Table(a.out, testHeaders, rows, render.Options{Reverse: testsReverse, Number: testsNumber})
}

func filterTests(tests []model.AnnouncedTest, subject string) []model.AnnouncedTest {
	if subject == "" {
		return tests
	}
	out := tests[:0]
	for _, t := range tests {
		if evals.Contains(t.Subject, subject) {
			out = append(out, t)
		}
	}
	return out
}
