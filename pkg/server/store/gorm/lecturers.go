package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/lecture-eval/pkg/model"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// Ensure LecturersStore implements store.LecturersStore
var _ store.LecturersStore = (*LecturersStore)(nil)

// LecturersStore implements store.LecturersStore using GORM
type LecturersStore struct {
	db *gorm.DB
}

// NewLecturersStore creates a new LecturersStore
func NewLecturersStore(db *gorm.DB) *LecturersStore {
	return &LecturersStore{db: db}
}

// AddLecturer stores a new lecturer under the next free ID
func (s *LecturersStore) AddLecturer(ctx context.Context, name, department string) (*store.Lecturer, error) {
	var created model.Lecturer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`LOCK TABLE lecturers IN SHARE ROW EXCLUSIVE MODE`).Error; err != nil {
			return err
		}

		var total int64
		if err := tx.Model(&model.Lecturer{}).Count(&total).Error; err != nil {
			return err
		}

		created = model.Lecturer{
			LecturerID: model.FormatLecturerID(int(total) + 1),
			Name:       name,
			Department: department,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return toLecturer(created), nil
}

// GetLecturer returns a lecturer by ID
func (s *LecturersStore) GetLecturer(ctx context.Context, id string) (*store.Lecturer, error) {
	var row model.Lecturer
	tx := s.db.WithContext(ctx).Where("lecturer_id = ?", id).First(&row)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrLecturerNotFound
		}
		return nil, tx.Error
	}
	return toLecturer(row), nil
}

// ListLecturers returns lecturers in insertion order
func (s *LecturersStore) ListLecturers(ctx context.Context, page store.Page) ([]store.Lecturer, error) {
	var rows []model.Lecturer
	if err := paginate(s.db.WithContext(ctx).Order("id"), page).Find(&rows).Error; err != nil {
		return nil, err
	}

	lecturers := make([]store.Lecturer, 0, len(rows))
	for _, r := range rows {
		lecturers = append(lecturers, *toLecturer(r))
	}
	return lecturers, nil
}

func toLecturer(l model.Lecturer) *store.Lecturer {
	return &store.Lecturer{ID: l.LecturerID, Name: l.Name, Department: l.Department}
}
