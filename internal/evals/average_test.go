package evals

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/filc/internal/model"
)

func grade(value int, weight float64) model.Evaluation {
	return model.Evaluation{Subject: "Matematika", Kind: "évközi jegy", Value: value, Weight: weight}
}

func TestAverageWeighted(t *testing.T) {
	evals := []model.Evaluation{grade(5, 2), grade(3, 1)}

	avg, err := Average(evals, nil)
	require.NoError(t, err)
	assert.InDelta(t, 13.0/3.0, avg, 1e-9)

	avg, err = Average(evals, []int{4})
	require.NoError(t, err)
	assert.InDelta(t, 4.25, avg, 1e-9)

	avg, err = Average(evals, []int{4, 7, 0, -2})
	require.NoError(t, err)
	assert.InDelta(t, 4.25, avg, 1e-9, "out of range ghosts are dropped")
}

func TestAverageSkipsSummaryAndTextGrades(t *testing.T) {
	yearEnd := grade(1, 1)
	yearEnd.YearEnd = true
	semester := grade(1, 1)
	semester.Semester = true
	text := model.Evaluation{Subject: "Matematika", Text: "Kiválóan megfelelt", Weight: 1}

	avg, err := Average([]model.Evaluation{grade(4, 1), yearEnd, semester, text}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 1e-9)
}

func TestAverageEmpty(t *testing.T) {
	_, err := Average(nil, nil)
	assert.True(t, errors.Is(err, ErrEmptyAverage))

	yearEnd := grade(5, 1)
	yearEnd.YearEnd = true
	_, err = Average([]model.Evaluation{yearEnd}, []int{9})
	assert.ErrorIs(t, err, ErrEmptyAverage)

	avg, err := Average(nil, []int{2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 2.5, avg, 1e-9)
}

func TestTrend(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	late := grade(3, 1)
	late.CreatedAt = day.AddDate(0, 0, 2)
	early := grade(5, 2)
	early.CreatedAt = day
	summary := grade(1, 1)
	summary.Semester = true

	points := Trend([]model.Evaluation{late, summary, early}, []int{4, 6})
	require.Len(t, points, 3)
	assert.InDelta(t, 5.0, points[0], 1e-9)
	assert.InDelta(t, 13.0/3.0, points[1], 1e-9)
	assert.InDelta(t, 4.25, points[2], 1e-9)

	avg, err := Average([]model.Evaluation{late, summary, early}, []int{4, 6})
	require.NoError(t, err)
	assert.InDelta(t, avg, points[len(points)-1], 1e-9, "trend ends at the weighted average")

	assert.Empty(t, Trend(nil, nil))
}
