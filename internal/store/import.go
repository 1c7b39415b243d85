package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/verte-zerg/filc/internal/model"
)

// Records is the JSON export accepted by Import.
type Records struct {
	Lessons     []model.Lesson        `json:"lessons"`
	Tests       []model.AnnouncedTest `json:"tests"`
	Evaluations []model.Evaluation    `json:"evaluations"`
}

// DecodeRecords reads a Records document.
func DecodeRecords(r io.Reader) (Records, error) {
	var recs Records
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&recs); err != nil {
		return Records{}, fmt.Errorf("failed to decode records: %w", err)
	}
	return recs, nil
}

// Import replaces all stored records of userID with recs.
func (s *Store) Import(ctx context.Context, userID string, recs Records) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	for _, table := range []string{"lessons", "announced_tests", "evaluations"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
			return err
		}
	}

	for _, l := range recs.Lessons {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO lessons (user_id, date, slot, subject, topic, start_at, end_at, room, teacher,
				substitute, cancelled, absent, placeholder, test_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, l.Day().Format(dateLayout), l.Slot, l.Subject, l.Topic,
			formatTime(l.Start), formatTime(l.End), l.Room, l.Teacher, l.Substitute,
			l.Cancelled, l.Absent, l.Placeholder, l.TestID,
		); err != nil {
			return err
		}
	}
	for _, t := range recs.Tests {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO announced_tests (user_id, date, slot, subject, mode, topic, teacher)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, t.Date.Format(dateLayout), t.Slot, t.Subject, t.Mode, t.Topic, t.Teacher,
		); err != nil {
			return err
		}
	}
	for _, e := range recs.Evaluations {
		weight := e.Weight
		if weight == 0 {
			weight = 1
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO evaluations (user_id, created_at, subject, topic, mode, kind, value, text_value,
				weight, year_end, semester, teacher)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, formatTime(e.CreatedAt), e.Subject, e.Topic, e.Mode, e.Kind, e.Value, e.Text,
			weight, e.YearEnd, e.Semester, e.Teacher,
		); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	s.log.Info("records imported",
		zap.String("user", userID),
		zap.Int("lessons", len(recs.Lessons)),
		zap.Int("tests", len(recs.Tests)),
		zap.Int("evaluations", len(recs.Evaluations)))
	return nil
}
