package store

import "context"

// Evaluation is a single rating of a lecturer by a user
type Evaluation struct {
	UserIndex  string  `json:"user_index" yaml:"user_index"`
	LecturerID string  `json:"lecturer_id" yaml:"lecturer_id"`
	Rating     int     `json:"rating" yaml:"rating"`
	Comments   *string `json:"comments" yaml:"comments"`
}

// EvaluationFilter narrows ListEvaluations. Empty fields match everything.
type EvaluationFilter struct {
	UserIndex  string
	LecturerID string
	Page       Page
}

// Matches reports whether e passes the filter's field constraints
func (f EvaluationFilter) Matches(e Evaluation) bool {
	if f.UserIndex != "" && e.UserIndex != f.UserIndex {
		return false
	}
	if f.LecturerID != "" && e.LecturerID != f.LecturerID {
		return false
	}
	return true
}

// LecturerSummary aggregates the evaluations of one lecturer
type LecturerSummary struct {
	LecturerID   string      `json:"lecturer_id"`
	Count        int         `json:"count"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

// Summarize builds a LecturerSummary from a lecturer's ratings
func Summarize(lecturerID string, ratings []int) *LecturerSummary {
	summary := &LecturerSummary{
		LecturerID:   lecturerID,
		Distribution: make(map[int]int),
	}
	total := 0
	for _, r := range ratings {
		summary.Distribution[r]++
		total += r
	}
	summary.Count = len(ratings)
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary
}

// EvaluationsStore abstracts evaluation storage operations
type EvaluationsStore interface {
	// SubmitEvaluation appends an evaluation. Referential checks are the
	// caller's job.
	SubmitEvaluation(ctx context.Context, evaluation Evaluation) error

	// ListEvaluations returns matching evaluations in submission order
	ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error)

	// SummarizeLecturer aggregates all evaluations of a lecturer
	SummarizeLecturer(ctx context.Context, lecturerID string) (*LecturerSummary, error)
}
