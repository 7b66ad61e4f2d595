package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/lecture-eval/pkg/model"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// Ensure EvaluationsStore implements store.EvaluationsStore
var _ store.EvaluationsStore = (*EvaluationsStore)(nil)

// EvaluationsStore implements store.EvaluationsStore using GORM
type EvaluationsStore struct {
	db *gorm.DB
}

// NewEvaluationsStore creates a new EvaluationsStore
func NewEvaluationsStore(db *gorm.DB) *EvaluationsStore {
	return &EvaluationsStore{db: db}
}

// SubmitEvaluation appends an evaluation
func (s *EvaluationsStore) SubmitEvaluation(ctx context.Context, evaluation store.Evaluation) error {
	return s.db.WithContext(ctx).Create(&model.Evaluation{
		UserIndex:  evaluation.UserIndex,
		LecturerID: evaluation.LecturerID,
		Rating:     evaluation.Rating,
		Comments:   evaluation.Comments,
	}).Error
}

// ListEvaluations returns matching evaluations in submission order
func (s *EvaluationsStore) ListEvaluations(ctx context.Context, filter store.EvaluationFilter) ([]store.Evaluation, error) {
	tx := s.db.WithContext(ctx).Order("id")
	if filter.UserIndex != "" {
		tx = tx.Where("user_index = ?", filter.UserIndex)
	}
	if filter.LecturerID != "" {
		tx = tx.Where("lecturer_id = ?", filter.LecturerID)
	}

	var rows []model.Evaluation
	if err := paginate(tx, filter.Page).Find(&rows).Error; err != nil {
		return nil, err
	}

	evaluations := make([]store.Evaluation, 0, len(rows))
	for _, r := range rows {
		evaluations = append(evaluations, store.Evaluation{
			UserIndex:  r.UserIndex,
			LecturerID: r.LecturerID,
			Rating:     r.Rating,
			Comments:   r.Comments,
		})
	}
	return evaluations, nil
}

// SummarizeLecturer aggregates all evaluations of a lecturer
func (s *EvaluationsStore) SummarizeLecturer(ctx context.Context, lecturerID string) (*store.LecturerSummary, error) {
	var rows []struct {
		Rating int
		Count  int
	}
	err := s.db.WithContext(ctx).Model(&model.Evaluation{}).
		Select("rating, count(*) AS count").
		Where("lecturer_id = ?", lecturerID).
		Group("rating").
		Order("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ratings := make([]int, 0)
	for _, r := range rows {
		for i := 0; i < r.Count; i++ {
			ratings = append(ratings, r.Rating)
		}
	}
	return store.Summarize(lecturerID, ratings), nil
}
