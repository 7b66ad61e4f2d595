package store

import "errors"

// ErrUserExists is returned when a user with the same email is already registered
var ErrUserExists = errors.New("user already exists")

// ErrUserNotFound is returned when a user index doesn't exist
var ErrUserNotFound = errors.New("user not found")

// ErrLecturerNotFound is returned when a lecturer ID doesn't exist
var ErrLecturerNotFound = errors.New("lecturer not found")
