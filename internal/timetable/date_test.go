package timetable

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/filc/internal/model"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2026-03-05", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"2026/03/05", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2026.3.5", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"12-25", time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)},
		{"12.25", time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)},
		{"15", time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)},
		{"7", time.Date(2026, 10, 7, 0, 0, 0, 0, time.UTC)},
		{"-7", time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{"-1", time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)},
		{"+7", time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)},
		{"45", time.Date(2026, 12, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDay(tc.in, now)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %v, want %v", got, tc.want)
		})
	}
}

func TestParseDayRoundTripsFullDates(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		in := day.Format("2006-01-02")
		got, err := ParseDay(in, now)
		require.NoError(t, err)
		require.Equal(t, in, got.Format("2006-01-02"))
		day = day.AddDate(0, 0, 1)
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)
	for _, in := range []string{"not-a-date", "2026-02-30", "", "tomorrow"} {
		_, err := ParseDay(in, now)
		var perr *ParseError
		require.Error(t, err, in)
		assert.True(t, errors.As(err, &perr), "expected ParseError for %q", in)
	}
}

func TestParseDayBoundsShift(t *testing.T) {
	now := time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)
	got, err := ParseDay("+300", now)
	require.NoError(t, err)
	assert.Equal(t, model.DateOf(now).AddDate(0, 0, 300), got)

	for _, in := range []string{"99999999999", "40000", "-40000"} {
		_, err := ParseDay(in, now)
		var perr *ParseError
		assert.True(t, errors.As(err, &perr), "expected ParseError for %q", in)
	}
}

type fakeWeeks struct {
	weeks map[string][]model.Lesson
	err   error
	calls int
}

func (f *fakeWeeks) Timetable(_ context.Context, day time.Time, wholeWeek bool) ([]model.Lesson, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.weeks[day.Format("2006-01-02")], nil
}

func TestDefaultDayFindsUpcomingLesson(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)
	tue := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	src := &fakeWeeks{weeks: map[string][]model.Lesson{
		"2026-10-19": {
			lessonAt(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), 1, "Matematika"),
			cancelled(lessonAt(tue, 1, "Fizika")),
			lessonAt(tue, 2, "Biológia"),
		},
	}}
	got := Resolver{Source: src}.DefaultDay(context.Background(), now)
	assert.True(t, got.Equal(tue), "got %v", got)
}

func TestDefaultDaySearchesNextWeek(t *testing.T) {
	now := time.Date(2026, 10, 23, 18, 0, 0, 0, time.UTC)
	nextMon := time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)
	src := &fakeWeeks{weeks: map[string][]model.Lesson{
		"2026-10-23": {lessonAt(time.Date(2026, 10, 23, 0, 0, 0, 0, time.UTC), 1, "Matematika")},
		"2026-10-30": {lessonAt(nextMon, 1, "Kémia")},
	}}
	got := Resolver{Source: src}.DefaultDay(context.Background(), now)
	assert.True(t, got.Equal(nextMon), "got %v", got)
	assert.Equal(t, 2, src.calls)
}

func TestDefaultDayFallsBackToToday(t *testing.T) {
	now := time.Date(2026, 7, 10, 9, 0, 0, 0, time.UTC)
	today := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)

	empty := &fakeWeeks{}
	assert.True(t, Resolver{Source: empty}.DefaultDay(context.Background(), now).Equal(today))

	failing := &fakeWeeks{err: errors.New("portal down")}
	assert.True(t, Resolver{Source: failing}.DefaultDay(context.Background(), now).Equal(today))
	assert.Equal(t, 1, failing.calls)
}

type pastWeeks struct{ calls int }

func (p *pastWeeks) Timetable(_ context.Context, _ time.Time, _ bool) ([]model.Lesson, error) {
	p.calls++
	return []model.Lesson{lessonAt(time.Date(2000, 1, 3, 0, 0, 0, 0, time.UTC), 1, "Történelem")}, nil
}

func TestDefaultDayStopsAtLookahead(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	src := &pastWeeks{}
	got := Resolver{Source: src, MaxWeeks: 3}.DefaultDay(context.Background(), now)
	assert.True(t, got.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, src.calls)
}
