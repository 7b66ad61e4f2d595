package jsonfile

import (
	"context"

	"github.com/doodlesbykumbi/lecture-eval/pkg/model"
	"github.com/doodlesbykumbi/lecture-eval/pkg/server/store"
)

// RegisterUser stores a new user under the next free index
func (s *Store) RegisterUser(ctx context.Context, name, email string) (*store.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readRecords[store.User](s, UsersFile)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == email {
			return nil, store.ErrUserExists
		}
	}

	user := store.User{
		Index: model.FormatUserIndex(len(users) + 1),
		Name:  name,
		Email: email,
	}
	if err := writeRecords(s, UsersFile, append(users, user)); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserExists checks if a user index is registered
func (s *Store) UserExists(ctx context.Context, index string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readRecords[store.User](s, UsersFile)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if u.Index == index {
			return true, nil
		}
	}
	return false, nil
}

// ListUsers returns users in registration order
func (s *Store) ListUsers(ctx context.Context, page store.Page) ([]store.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readRecords[store.User](s, UsersFile)
	if err != nil {
		return nil, err
	}
	return window(users, page), nil
}
