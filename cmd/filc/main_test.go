package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/filc/internal/config"
	"github.com/verte-zerg/filc/internal/model"
	"github.com/verte-zerg/filc/internal/render"
	"github.com/verte-zerg/filc/internal/timetable"
)

var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func lessonAt(day time.Time, slot int, subject string) model.Lesson {
	start := day.Add(time.Duration(7+slot) * time.Hour)
	return model.Lesson{Subject: subject, Slot: slot, Date: day, Start: start, End: start.Add(45 * time.Minute)}
}

func TestPrintCurrentNextLesson(t *testing.T) {
	day := []model.Lesson{lessonAt(monday, 1, "Matematika"), lessonAt(monday, 2, "Fizika")}
	now := monday.Add(7*time.Hour + 30*time.Minute)

	var buf bytes.Buffer
	require.NoError(t, printCurrent(&buf, day, day, now, false))
	assert.Equal(t, "30m -> Matematika\n", buf.String())
}

func TestPrintCurrentInProgress(t *testing.T) {
	day := []model.Lesson{lessonAt(monday, 1, "Matematika"), lessonAt(monday, 2, "Fizika")}
	now := monday.Add(8*time.Hour + 15*time.Minute)

	var buf bytes.Buffer
	require.NoError(t, printCurrent(&buf, day, day, now, false))
	assert.Equal(t, "Matematika, 30m\n", buf.String())

	buf.Reset()
	require.NoError(t, printCurrent(&buf, day, day, now, true))
	assert.Contains(t, buf.String(), `[30,{"subject":"Matematika"`)
}

func TestEvalRow(t *testing.T) {
	created := time.Date(2026, 10, 12, 9, 5, 0, 0, time.UTC)
	row := evalRow(model.Evaluation{Subject: "Matematika", Topic: "Törtek", Value: 4, Mode: "Írásbeli", Teacher: "Kiss Anna", CreatedAt: created})
	assert.Equal(t, []string{"Törtek", "4", "Matematika", "Írásbeli", "Kiss Anna", "2026-10-12 09:05"}, row)

	row = evalRow(model.Evaluation{Subject: "Magatartás", Text: "Példás", CreatedAt: created})
	assert.Equal(t, "Példás", row[1])
}

func TestFilterTests(t *testing.T) {
	tests := []model.AnnouncedTest{{Subject: "Matematika"}, {Subject: "Történelem"}, {Subject: "Irodalom"}}
	got := filterTests(tests, "TÖRT")
	require.Len(t, got, 1)
	assert.Equal(t, "Történelem", got[0].Subject)
	assert.Len(t, filterTests([]model.AnnouncedTest{{Subject: "x"}}, ""), 1)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "env", firstNonEmpty("", "  ", "env", "file"))
	assert.Equal(t, "", firstNonEmpty("", ""))
}

func TestRememberUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, rememberUser(path, config.FileConfig{}, "anna"))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "anna", cfg.DefaultUser)
	assert.Contains(t, cfg.Users, "anna")

	require.NoError(t, rememberUser(path, cfg, "peter"))
	cfg, err = config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "anna", cfg.DefaultUser)
	assert.Equal(t, []string{"anna", "peter"}, cfg.UserIDs())
}

func TestPrintGridHolidayWeek(t *testing.T) {
	holiday := []model.Lesson{{Subject: "Őszi szünet", Placeholder: true, Date: monday}}
	grid := timetable.BuildWeekGrid(holiday, timetable.Options{Now: monday})

	var buf bytes.Buffer
	require.NoError(t, printGrid(&buf, grid, render.Plain(), false, "no lessons recorded this week"))
	assert.Equal(t, "no lessons recorded this week\n", buf.String())

	buf.Reset()
	require.NoError(t, printGrid(&buf, grid, render.Plain(), true, "no lessons recorded this week"))
	assert.Contains(t, buf.String(), `"rows":null`)
}

func TestPrintGridHolidayDay(t *testing.T) {
	holiday := []model.Lesson{{Subject: "Nemzeti ünnep", Placeholder: true, Date: monday}}
	grid := timetable.BuildDayGrid(holiday, holiday, nil, timetable.Options{Now: monday})

	var buf bytes.Buffer
	require.NoError(t, printGrid(&buf, grid, render.Plain(), false, "no lessons recorded on Monday, 2026-10-19"))
	assert.Equal(t, "Nemzeti ünnep\nno lessons recorded on Monday, 2026-10-19\n", buf.String())
}
