// Package evals computes grade averages and filters evaluations.
package evals

import (
	"errors"
	"sort"

	"github.com/verte-zerg/filc/internal/model"
)

// ErrEmptyAverage is returned when there is nothing to average.
var ErrEmptyAverage = errors.New("no grades to average")

const (
	minGrade = 1
	maxGrade = 5
)

// ValidGhost reports whether a hypothetical grade is on the 1-5 scale.
func ValidGhost(g int) bool {
	return g >= minGrade && g <= maxGrade
}

// Average returns the weighted average of the numeric, non-summary
// evaluations plus the valid ghost grades, each ghost weighing 1.
// Ghosts outside 1-5 are dropped.
func Average(evals []model.Evaluation, ghosts []int) (float64, error) {
	var sum, count float64
	for _, e := range evals {
		if !counted(e) {
			continue
		}
		sum += float64(e.Value) * e.Weight
		count += e.Weight
	}
	for _, g := range ghosts {
		if !ValidGhost(g) {
			continue
		}
		sum += float64(g)
		count++
	}
	if count == 0 {
		return 0, ErrEmptyAverage
	}
	return sum / count, nil
}

// Trend returns the running weighted average after each counted
// evaluation in chronological order, followed by the ghosts.
func Trend(evals []model.Evaluation, ghosts []int) []float64 {
	ordered := make([]model.Evaluation, 0, len(evals))
	for _, e := range evals {
		if counted(e) {
			ordered = append(ordered, e)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	var out []float64
	var sum, count float64
	push := func(value, weight float64) {
		sum += value * weight
		count += weight
		if count > 0 {
			out = append(out, sum/count)
		}
	}
	for _, e := range ordered {
		push(float64(e.Value), e.Weight)
	}
	for _, g := range ghosts {
		if ValidGhost(g) {
			push(float64(g), 1)
		}
	}
	return out
}

func counted(e model.Evaluation) bool {
	return !e.Summary() && e.Numeric()
}
