// Package model defines the records of lecture-eval and their GORM mappings.
//
// # Core Models
//
//   - User: a registered student, identified by a zero-padded index ("0001")
//   - Lecturer: an evaluable lecturer, identified by "L" + zero-padded number
//   - Evaluation: one rating (with optional comments) of a lecturer by a user
//
// # Database Schema
//
// The postgres backend stores the models in the users, lecturers and
// evaluations tables created by the migrations under db/migrations. The
// business identifiers live in the user_index and lecturer_id columns; the
// serial id columns are internal.
package model
