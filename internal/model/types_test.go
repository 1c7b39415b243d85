package model

import (
	"testing"
	"time"
)

func TestLessonDayFallsBackToStart(t *testing.T) {
	start := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	l := Lesson{Start: start}
	if got := l.Day(); !got.Equal(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day: %v", got)
	}
}

func TestLessonEqual(t *testing.T) {
	start := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	a := Lesson{Subject: "Matematika", Slot: 1, Start: start, End: start.Add(45 * time.Minute)}
	b := a
	b.Start = start.In(time.FixedZone("CET", 3600))
	if !a.Equal(b) {
		t.Fatalf("expected lessons to be equal across locations")
	}
	b.Cancelled = true
	if a.Equal(b) {
		t.Fatalf("expected cancelled lesson to differ")
	}
}

func TestGridEmptyAndStatusNames(t *testing.T) {
	g := Grid{Header: []string{"."}}
	if !g.Empty() {
		t.Fatalf("expected header-only grid to be empty")
	}
	g.Rows = [][]Cell{{{Text: "1"}, {Text: "Matematika", Status: StatusCancelled}}}
	if g.Empty() {
		t.Fatalf("expected grid with rows to be non-empty")
	}
	if StatusCancelled.String() != "cancelled" {
		t.Fatalf("unexpected status name: %s", StatusCancelled)
	}
}
