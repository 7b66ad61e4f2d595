package store

import "context"

// User is a registered student
type User struct {
	Index string `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// UsersStore abstracts user storage operations
type UsersStore interface {
	// RegisterUser stores a new user under the next free index.
	// Returns ErrUserExists if the email is already registered.
	RegisterUser(ctx context.Context, name, email string) (*User, error)

	// UserExists checks if a user index is registered
	UserExists(ctx context.Context, index string) (bool, error)

	// ListUsers returns users in registration order
	ListUsers(ctx context.Context, page Page) ([]User, error)
}
