package evals

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/verte-zerg/filc/internal/model"
)

// FilterByKindOrTitle keeps the evaluations whose mode, topic or kind
// contains filter, ignoring case. The slice is filtered in place.
func FilterByKindOrTitle(evals []model.Evaluation, filter string) []model.Evaluation {
	return slices.DeleteFunc(evals, func(e model.Evaluation) bool {
		return !Contains(e.Mode, filter) && !Contains(e.Topic, filter) && !Contains(e.Kind, filter)
	})
}

// FilterBySubject keeps the evaluations whose subject contains subject,
// ignoring case. The slice is filtered in place.
func FilterBySubject(evals []model.Evaluation, subject string) []model.Evaluation {
	return slices.DeleteFunc(evals, func(e model.Evaluation) bool {
		return !Contains(e.Subject, subject)
	})
}

// Contains is a case-insensitive substring match using Unicode case folding.
func Contains(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}
