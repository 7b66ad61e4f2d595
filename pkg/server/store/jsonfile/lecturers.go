package jsonfile

import (
	"context"

	"github.com/doodlesbykumbi/lecture-eval/pkg/model"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// AddLecturer stores a new lecturer under the next free ID
func (s *Store) AddLecturer(ctx context.Context, name, department string) (*store.Lecturer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lecturers, err := readRecords[store.Lecturer](s, LecturersFile)
	if err != nil {
		return nil, err
	}

	lecturer := store.Lecturer{
		ID:         model.FormatLecturerID(len(lecturers) + 1),
		Name:       name,
		Department: department,
	}
	if err := writeRecords(s, LecturersFile, append(lecturers, lecturer)); err != nil {
		return nil, err
	}
	return &lecturer, nil
}

// GetLecturer returns a lecturer by ID
func (s *Store) GetLecturer(ctx context.Context, id string) (*store.Lecturer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lecturers, err := readRecords[store.Lecturer](s, LecturersFile)
	if err != nil {
		return nil, err
	}
	for i := range lecturers {
		if lecturers[i].ID == id {
			return &lecturers[i], nil
		}
	}
	return nil, store.ErrLecturerNotFound
}

// ListLecturers returns lecturers in insertion order
func (s *Store) ListLecturers(ctx context.Context, page store.Page) ([]store.Lecturer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lecturers, err := readRecords[store.Lecturer](s, LecturersFile)
	if err != nil {
		return nil, err
	}
	return window(lecturers, page), nil
}
