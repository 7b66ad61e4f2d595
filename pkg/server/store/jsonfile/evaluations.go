package jsonfile

import (
	"context"

	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// SubmitEvaluation appends an evaluation
func (s *Store) SubmitEvaluation(ctx context.Context, evaluation store.Evaluation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	evaluations, err := readRecords[store.Evaluation](s, EvaluationsFile)
	if err != nil {
		return err
	}
	return writeRecords(s, EvaluationsFile, append(evaluations, evaluation))
}

// ListEvaluations returns matching evaluations in submission order
func (s *Store) ListEvaluations(ctx context.Context, filter store.EvaluationFilter) ([]store.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	evaluations, err := readRecords[store.Evaluation](s, EvaluationsFile)
	if err != nil {
		return nil, err
	}

	matched := make([]store.Evaluation, 0, len(evaluations))
	for _, e := range evaluations {
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}
	return window(matched, filter.Page), nil
}

// SummarizeLecturer aggregates all evaluations of a lecturer
func (s *Store) SummarizeLecturer(ctx context.Context, lecturerID string) (*store.LecturerSummary, error) {
	evaluations, err := s.ListEvaluations(ctx, store.EvaluationFilter{LecturerID: lecturerID})
	if err != nil {
		return nil, err
	}
	ratings := make([]int, 0, len(evaluations))
	for _, e := range evaluations {
		ratings = append(ratings, e.Rating)
	}
	return store.Summarize(lecturerID, ratings), nil
}
