// Package provider defines the contract for fetching school records.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/verte-zerg/filc/internal/model"
)

// Provider fetches lessons, announced tests and evaluations for one account.
type Provider interface {
	Timetable(ctx context.Context, day time.Time, wholeWeek bool) ([]model.Lesson, error)
	Tests(ctx context.Context, from, to time.Time) ([]model.AnnouncedTest, error)
	Evaluations(ctx context.Context, from, to time.Time) ([]model.Evaluation, error)
}

// Error wraps a transport, auth or storage failure of a provider call.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying failure.
func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap returns nil for a nil err, otherwise a *Error for op.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// WeekBounds returns Monday and Sunday of the week containing day.
func WeekBounds(day time.Time) (time.Time, time.Time) {
	day = model.DateOf(day)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
