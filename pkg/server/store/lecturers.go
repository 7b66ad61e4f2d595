package store

import "context"

// Lecturer is an evaluable lecturer
type Lecturer struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Department string `json:"department" yaml:"department"`
}

// LecturersStore abstracts lecturer storage operations
type LecturersStore interface {
	// AddLecturer stores a new lecturer under the next free ID
	AddLecturer(ctx context.Context, name, department string) (*Lecturer, error)

	// GetLecturer returns a lecturer by ID.
	// Returns ErrLecturerNotFound if it doesn't exist.
	GetLecturer(ctx context.Context, id string) (*Lecturer, error)

	// ListLecturers returns lecturers in insertion order
	ListLecturers(ctx context.Context, page Page) ([]Lecturer, error)
}
