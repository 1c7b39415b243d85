package timetable

import (
	"sort"
	"time"

	"github.com/verte-zerg/filc/internal/model"
)

// upcomingWindow limits how far ahead the next lesson is flagged in the week grid.
const upcomingWindow = 24 * time.Hour

// Happening reports whether now falls within [Start, End).
func Happening(l model.Lesson, now time.Time) bool {
	return !now.Before(l.Start) && now.Before(l.End)
}

// Forecoming reports whether the lesson has not started yet.
func Forecoming(l model.Lesson, now time.Time) bool {
	return l.Start.After(now)
}

// Ignore reports whether the lesson should be skipped when looking for the next one.
func Ignore(l model.Lesson) bool {
	return l.Placeholder || l.Cancelled || l.Subject == GapSubject
}

// CurrentLessons returns every lesson happening at now. Overlapping records are all kept.
func CurrentLessons(lessons []model.Lesson, now time.Time) []model.Lesson {
	current := []model.Lesson{}
	for _, lsn := range lessons {
		if Happening(lsn, now) {
			current = append(current, lsn)
		}
	}
	return current
}

// NextLesson returns the first lesson in slot order that is still to come
// and not ignorable. Nothing is returned while a lesson is in progress.
func NextLesson(lessons []model.Lesson, now time.Time) (model.Lesson, bool) {
	if len(CurrentLessons(lessons, now)) > 0 {
		return model.Lesson{}, false
	}
	for _, lsn := range sortLessons(lessons) {
		if Forecoming(lsn, now) && !Ignore(lsn) {
			return lsn, true
		}
	}
	return model.Lesson{}, false
}

// Classify picks the single display status of a lesson; the first match wins:
// happening, imminent next lesson, cancelled, absent, substituted, announced test.
func Classify(l model.Lesson, next *model.Lesson, now time.Time) model.Status {
	switch {
	case Happening(l, now):
		return model.StatusHappening
	case next != nil && l.Equal(*next) && l.Start.Sub(now) <= upcomingWindow:
		return model.StatusUpcoming
	case l.Cancelled:
		return model.StatusCancelled
	case l.Absent:
		return model.StatusAbsent
	case l.Substitute != "":
		return model.StatusSubstituted
	case l.TestID != "":
		return model.StatusTest
	default:
		return model.StatusNormal
	}
}

// MinutesUntil returns whole minutes from now until t, truncated toward zero.
func MinutesUntil(t, now time.Time) int {
	return int(t.Sub(now).Minutes())
}

// sortLessons returns a copy ordered by date, then slot.
func sortLessons(lessons []model.Lesson) []model.Lesson {
	out := make([]model.Lesson, len(lessons))
	copy(out, lessons)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Day(), out[j].Day()
		if !model.SameDay(di, dj) {
			return di.Before(dj)
		}
		return out[i].Slot < out[j].Slot
	})
	return out
}
