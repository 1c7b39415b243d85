package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/filc/internal/model"
	"github.com/verte-zerg/filc/internal/provider"
)

// Account reads the stored records of one user. It implements provider.Provider.
type Account struct {
	store  *Store
	userID string
}

var _ provider.Provider = (*Account)(nil)

// Account returns the record view of userID.
func (s *Store) Account(userID string) *Account {
	return &Account{store: s, userID: userID}
}

// Timetable returns the lessons of day, or of its Monday-Sunday week, in date and slot order.
func (a *Account) Timetable(ctx context.Context, day time.Time, wholeWeek bool) ([]model.Lesson, error) {
	from, to := model.DateOf(day), model.DateOf(day)
	if wholeWeek {
		from, to = provider.WeekBounds(day)
	}
	rows, err := a.store.db.QueryContext(ctx,
		`SELECT date, slot, subject, topic, start_at, end_at, room, teacher, substitute,
			cancelled, absent, placeholder, test_id
		FROM lessons
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, slot ASC, start_at ASC`,
		a.userID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, provider.Wrap("query lessons", err)
	}
	defer closeRows(rows)

	loc := day.Location()
	lessons := []model.Lesson{}
	for rows.Next() {
		var l model.Lesson
		var date, start, end string
		if err := rows.Scan(&date, &l.Slot, &l.Subject, &l.Topic, &start, &end, &l.Room, &l.Teacher,
			&l.Substitute, &l.Cancelled, &l.Absent, &l.Placeholder, &l.TestID); err != nil {
			return nil, provider.Wrap("scan lesson", err)
		}
		if l.Date, err = time.ParseInLocation(dateLayout, date, loc); err != nil {
			return nil, provider.Wrap("parse lesson date", err)
		}
		if l.Start, err = parseTime(start, loc); err != nil {
			return nil, provider.Wrap("parse lesson start", err)
		}
		if l.End, err = parseTime(end, loc); err != nil {
			return nil, provider.Wrap("parse lesson end", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.Wrap("read lessons", err)
	}
	a.store.log.Debug("lessons loaded",
		zap.String("user", a.userID),
		zap.Time("from", from),
		zap.Time("to", to),
		zap.Int("count", len(lessons)))
	return lessons, nil
}

// Tests returns the announced tests between from and to, inclusive. Zero bounds are open.
func (a *Account) Tests(ctx context.Context, from, to time.Time) ([]model.AnnouncedTest, error) {
	lo, hi := dateBounds(from, to)
	rows, err := a.store.db.QueryContext(ctx,
		`SELECT date, slot, subject, mode, topic, teacher
		FROM announced_tests
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC, slot ASC`,
		a.userID, lo, hi)
	if err != nil {
		return nil, provider.Wrap("query tests", err)
	}
	defer closeRows(rows)

	tests := []model.AnnouncedTest{}
	for rows.Next() {
		var t model.AnnouncedTest
		var date string
		if err := rows.Scan(&date, &t.Slot, &t.Subject, &t.Mode, &t.Topic, &t.Teacher); err != nil {
			return nil, provider.Wrap("scan test", err)
		}
		if t.Date, err = time.ParseInLocation(dateLayout, date, time.Local); err != nil {
			return nil, provider.Wrap("parse test date", err)
		}
		tests = append(tests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.Wrap("read tests", err)
	}
	return tests, nil
}

// Evaluations returns the evaluations created between from and to, inclusive, newest first.
func (a *Account) Evaluations(ctx context.Context, from, to time.Time) ([]model.Evaluation, error) {
	lo, hi := dateBounds(from, to)
	rows, err := a.store.db.QueryContext(ctx,
		`SELECT created_at, subject, topic, mode, kind, value, text_value, weight, year_end, semester, teacher
		FROM evaluations
		WHERE user_id = ? AND substr(created_at, 1, 10) >= ? AND substr(created_at, 1, 10) <= ?
		ORDER BY created_at DESC`,
		a.userID, lo, hi)
	if err != nil {
		return nil, provider.Wrap("query evaluations", err)
	}
	defer closeRows(rows)

	evals := []model.Evaluation{}
	for rows.Next() {
		var e model.Evaluation
		var created string
		if err := rows.Scan(&created, &e.Subject, &e.Topic, &e.Mode, &e.Kind, &e.Value, &e.Text,
			&e.Weight, &e.YearEnd, &e.Semester, &e.Teacher); err != nil {
			return nil, provider.Wrap("scan evaluation", err)
		}
		if e.CreatedAt, err = parseTime(created, time.Local); err != nil {
			return nil, provider.Wrap("parse evaluation time", err)
		}
		evals = append(evals, e)
	}
	if err := rows.Err(); err != nil {
		return nil, provider.Wrap("read evaluations", err)
	}
	return evals, nil
}

func dateBounds(from, to time.Time) (string, string) {
	lo, hi := "0000-01-01", "9999-12-31"
	if !from.IsZero() {
		lo = from.Format(dateLayout)
	}
	if !to.IsZero() {
		hi = to.Format(dateLayout)
	}
	return lo, hi
}

func parseTime(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
