package provider

import (
	"context"
	"time"

	"github.com/verte-zerg/filc/internal/model"
)

// Renamed decorates a Provider, replacing names per a user-supplied map.
type Renamed struct {
	Provider
	Renames map[string]string
}

// WithRenames wraps p; an empty map returns p unchanged.
func WithRenames(p Provider, renames map[string]string) Provider {
	if len(renames) == 0 {
		return p
	}
	return Renamed{Provider: p, Renames: renames}
}

func (r Renamed) name(s string) string {
	if to, ok := r.Renames[s]; ok {
		return to
	}
	return s
}

// Timetable implements Provider.
func (r Renamed) Timetable(ctx context.Context, day time.Time, wholeWeek bool) ([]model.Lesson, error) {
	lessons, err := r.Provider.Timetable(ctx, day, wholeWeek)
	if err != nil {
		return nil, err
	}
	for i := range lessons {
		l := &lessons[i]
		l.Subject = r.name(l.Subject)
		l.Teacher = r.name(l.Teacher)
		l.Substitute = r.name(l.Substitute)
		l.Room = r.name(l.Room)
	}
	return lessons, nil
}

// Tests implements Provider.
func (r Renamed) Tests(ctx context.Context, from, to time.Time) ([]model.AnnouncedTest, error) {
	tests, err := r.Provider.Tests(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for i := range tests {
		tests[i].Subject = r.name(tests[i].Subject)
		tests[i].Teacher = r.name(tests[i].Teacher)
	}
	return tests, nil
}

// Evaluations implements Provider.
func (r Renamed) Evaluations(ctx context.Context, from, to time.Time) ([]model.Evaluation, error) {
	evals, err := r.Provider.Evaluations(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for i := range evals {
		evals[i].Subject = r.name(evals[i].Subject)
		evals[i].Teacher = r.name(evals[i].Teacher)
	}
	return evals, nil
}
