// Package model defines shared data structures.
package model

import "time"

// Lesson is one scheduled class occurrence as fetched from the school portal.
type Lesson struct {
	Subject     string    `json:"subject"`
	Topic       string    `json:"topic,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Slot        int       `json:"slot"`
	Date        time.Time `json:"date"`
	Room        string    `json:"room,omitempty"`
	Teacher     string    `json:"teacher,omitempty"`
	Substitute  string    `json:"substitute,omitempty"`
	Cancelled   bool      `json:"cancelled,omitempty"`
	Absent      bool      `json:"absent,omitempty"`
	Placeholder bool      `json:"placeholder,omitempty"`
	TestID      string    `json:"test_id,omitempty"`
}

// Day returns the calendar date of the lesson, falling back to its start time.
func (l Lesson) Day() time.Time {
	if !l.Date.IsZero() {
		return DateOf(l.Date)
	}
	return DateOf(l.Start)
}

// Equal reports whether two lessons describe the same occurrence.
func (l Lesson) Equal(o Lesson) bool {
	return l.Subject == o.Subject &&
		l.Slot == o.Slot &&
		l.Start.Equal(o.Start) &&
		l.End.Equal(o.End) &&
		SameDay(l.Day(), o.Day()) &&
		l.Room == o.Room &&
		l.Teacher == o.Teacher &&
		l.Substitute == o.Substitute &&
		l.Cancelled == o.Cancelled &&
		l.Absent == o.Absent &&
		l.Placeholder == o.Placeholder &&
		l.TestID == o.TestID
}

// AnnouncedTest is a test announced for the lesson in a given slot.
type AnnouncedTest struct {
	Date    time.Time `json:"date"`
	Slot    int       `json:"slot"`
	Subject string    `json:"subject"`
	Mode    string    `json:"mode"`
	Topic   string    `json:"topic,omitempty"`
	Teacher string    `json:"teacher,omitempty"`
}

// Evaluation is a single grade. Value is zero for text-only evaluations.
type Evaluation struct {
	Subject   string    `json:"subject"`
	Topic     string    `json:"topic,omitempty"`
	Mode      string    `json:"mode,omitempty"`
	Kind      string    `json:"kind"`
	Value     int       `json:"value,omitempty"`
	Text      string    `json:"text,omitempty"`
	Weight    float64   `json:"weight"`
	YearEnd   bool      `json:"year_end,omitempty"`
	Semester  bool      `json:"semester,omitempty"`
	Teacher   string    `json:"teacher,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Numeric reports whether the evaluation carries a numeric grade.
func (e Evaluation) Numeric() bool {
	return e.Value != 0
}

// Summary reports whether the evaluation is a year-end or semester grade.
func (e Evaluation) Summary() bool {
	return e.YearEnd || e.Semester
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
