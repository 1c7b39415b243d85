// Package timetable turns fetched lessons into day and week grids.
package timetable

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/filc/internal/model"
)

// DefaultLookaheadWeeks bounds the forward search of DefaultDay.
const DefaultLookaheadWeeks = 26

const dateLayout = "2006-1-2"

var separatorReplacer = strings.NewReplacer("/", "-", ".", "-")

// ParseError reports a day string that is neither a date nor a day shift.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid day %q: not a date or day shift", e.Input)
}

// Unwrap returns the day-shift parse failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseDay resolves a user-supplied day relative to now.
//
// Accepted forms, tried in order: YYYY-MM-DD, MM-DD (current year),
// DD (current year and month), and a signed day shift such as -1 or +7.
// Shifts must fit in 16 bits.
// '/' and '.' are accepted as separators. A bare number that is a valid
// day of the current month is a date, not a shift.
func ParseDay(input string, now time.Time) (time.Time, error) {
	today := model.DateOf(now)
	date := separatorReplacer.Replace(strings.TrimSpace(input))
	candidates := []string{
		date,
		fmt.Sprintf("%d-%s", today.Year(), date),
		fmt.Sprintf("%d-%d-%s", today.Year(), int(today.Month()), date),
	}
	for _, candidate := range candidates {
		if day, err := time.ParseInLocation(dateLayout, candidate, now.Location()); err == nil {
			return day, nil
		}
	}
	shift, err := strconv.ParseInt(date, 10, 16)
	if err != nil {
		return time.Time{}, &ParseError{Input: input, Err: err}
	}
	return today.AddDate(0, 0, int(shift)), nil
}

// WeekSource fetches the lessons of a day or of the week containing it.
type WeekSource interface {
	Timetable(ctx context.Context, day time.Time, wholeWeek bool) ([]model.Lesson, error)
}

// Resolver picks the day to show when the user did not name one.
type Resolver struct {
	Source   WeekSource
	MaxWeeks int
	Log      *zap.Logger
}

// DefaultDay returns the date of the next lesson worth showing, searching
// week by week from now. It falls back to today when a week is empty, a
// fetch fails, or MaxWeeks weeks were searched without a match.
func (r Resolver) DefaultDay(ctx context.Context, now time.Time) time.Time {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	maxWeeks := r.MaxWeeks
	if maxWeeks <= 0 {
		maxWeeks = DefaultLookaheadWeeks
	}
	today := model.DateOf(now)
	log.Debug("searching for a day to show", zap.Time("today", today), zap.Int("max_weeks", maxWeeks))

	for week := 0; week < maxWeeks; week++ {
		day := today.AddDate(0, 0, 7*week)
		lessons, err := r.Source.Timetable(ctx, day, true)
		if err != nil {
			log.Warn("week fetch failed, showing today", zap.Time("week_of", day), zap.Error(err))
			return today
		}
		if len(lessons) == 0 {
			log.Info("no lessons this week, showing today", zap.Time("week_of", day))
			return today
		}
		for _, lsn := range sortLessons(lessons) {
			if !Ignore(lsn) && (Happening(lsn, now) || Forecoming(lsn, now)) {
				return lsn.Day()
			}
		}
	}
	log.Warn("lookahead exhausted, showing today", zap.Int("weeks", maxWeeks))
	return today
}
