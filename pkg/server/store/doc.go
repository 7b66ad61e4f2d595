// Package store provides storage abstractions for the lecture-eval server.
//
// This package defines the interfaces the HTTP endpoints and the CLI talk to,
// so that the storage backend can be swapped and tests can run without a
// database.
//
// # Available Stores
//
//   - UsersStore: user registration and lookup
//   - LecturersStore: lecturer catalogue
//   - EvaluationsStore: rating submission, listing and per-lecturer summaries
//   - HealthStore: backend connectivity checks
//
// # Implementations
//
//   - store/gorm: PostgreSQL through GORM
//   - store/jsonfile: JSON documents on an afero filesystem
//
// # Usage
//
//	users := jsonfile.New(afero.NewOsFs(), "/var/lib/lecture-eval")
//	user, err := users.RegisterUser(ctx, "Ada", "ada@example.edu")
//	if errors.Is(err, store.ErrUserExists) {
//	    // Handle duplicate email
//	}
package store
