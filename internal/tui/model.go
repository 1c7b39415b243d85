// Package tui provides the Bubble Tea timetable browser.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/filc/internal/model"
	"github.com/verte-zerg/filc/internal/provider"
	"github.com/verte-zerg/filc/internal/render"
	"github.com/verte-zerg/filc/internal/timetable"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Week  key.Binding
	Today key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Week, k.Today, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
	Next:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Week:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "day/week")),
	Today: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Config holds what the browser needs to fetch and draw timetables.
type Config struct {
	Provider provider.Provider
	Day      time.Time
	Week     bool
	SlotBase model.SlotBase
	Styler   render.Styler
	// Clock defaults to time.Now.
	Clock func() time.Time
	Log   *zap.Logger
}

type gridMsg struct {
	day  time.Time
	week bool
	grid model.Grid
	err  error
}

// Model implements the Bubble Tea timetable browser.
type Model struct {
	ctx    context.Context
	src    provider.Provider
	base   model.SlotBase
	styler render.Styler
	clock  func() time.Time
	log    *zap.Logger

	day  time.Time
	week bool

	grid   model.Grid
	errMsg string

	viewport viewport.Model
	help     help.Model

	width  int
	height int
}

// NewModel constructs a timetable browser starting at cfg.Day.
func NewModel(ctx context.Context, cfg Config) *Model {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Model{
		ctx:      ctx,
		src:      cfg.Provider,
		base:     cfg.SlotBase,
		styler:   cfg.Styler,
		clock:    clock,
		log:      log,
		day:      model.DateOf(cfg.Day),
		week:     cfg.Week,
		viewport: viewport.New(0, 0),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case gridMsg:
		if !model.SameDay(msg.day, m.day) || msg.week != m.week {
			return m, nil
		}
		m.grid = msg.grid
		m.errMsg = ""
		if msg.err != nil {
			m.grid = model.Grid{}
			m.errMsg = msg.err.Error()
		}
		m.updateLayout()
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Prev):
			m.day = m.day.AddDate(0, 0, -m.step())
			return m, m.load()
		case key.Matches(msg, keys.Next):
			m.day = m.day.AddDate(0, 0, m.step())
			return m, m.load()
		case key.Matches(msg, keys.Week):
			m.week = !m.week
			return m, m.load()
		case key.Matches(msg, keys.Today):
			m.day = model.DateOf(m.clock())
			return m, m.load()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	header := headerStyle.Render(m.heading())
	footer := m.help.View(keys)
	if m.errMsg != "" {
		footer = errorStyle.Render(m.errMsg) + "\n" + footer
	}
	if m.width == 0 || m.height == 0 {
		return strings.Join([]string{header, m.renderGrid(), footer}, "\n")
	}
	return strings.Join([]string{
		fitLines(header, m.width, 1),
		fitLines(m.viewport.View(), m.width, m.viewport.Height),
		fitLines(footer, m.width, lipgloss.Height(footer)),
	}, "\n")
}

func (m *Model) step() int {
	if m.week {
		return 7
	}
	return 1
}

func (m *Model) heading() string {
	if m.week {
		from, to := provider.WeekBounds(m.day)
		return fmt.Sprintf("Week %s - %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return timetable.DayTitle(m.day)
}

func (m *Model) updateLayout() {
	footerHeight := lipgloss.Height(m.help.View(keys))
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight := m.height - 1 - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.help.Width = m.width
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
	m.viewport.SetContent(m.renderGrid())
}

// load fetches and builds the grid for the current day and mode.
func (m *Model) load() tea.Cmd {
	day, week := m.day, m.week
	now := m.clock()
	return func() tea.Msg {
		grid, err := m.fetch(day, week, now)
		if err != nil {
			m.log.Warn("timetable fetch failed", zap.Time("day", day), zap.Bool("week", week), zap.Error(err))
		}
		return gridMsg{day: day, week: week, grid: grid, err: err}
	}
}

func (m *Model) fetch(day time.Time, week bool, now time.Time) (model.Grid, error) {
	opts := timetable.Options{Now: now, SlotBase: m.base}
	weekLessons, err := m.src.Timetable(m.ctx, day, true)
	if err != nil {
		return model.Grid{}, err
	}
	if week {
		return timetable.BuildWeekGrid(weekLessons, opts), nil
	}
	lessons, err := m.src.Timetable(m.ctx, day, false)
	if err != nil {
		return model.Grid{}, err
	}
	tests, err := m.src.Tests(m.ctx, day, day)
	if err != nil {
		return model.Grid{}, err
	}
	return timetable.BuildDayGrid(lessons, weekLessons, tests, opts), nil
}

func (m *Model) renderGrid() string {
	if m.errMsg != "" {
		return ""
	}
	if m.grid.Empty() {
		if m.grid.Title != "" {
			return mutedStyle.Render(m.grid.Title + ": no lessons")
		}
		return mutedStyle.Render("no lessons")
	}
	var buf bytes.Buffer
	if err := render.Grid(&buf, m.grid, m.styler, render.Options{}); err != nil {
		return err.Error()
	}
	return strings.TrimRight(buf.String(), "\n")
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	w := lipgloss.Width(line)
	if w >= width {
		return line
	}
	return line + strings.Repeat(" ", width-w)
}
