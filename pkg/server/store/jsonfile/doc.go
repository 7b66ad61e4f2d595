// Package jsonfile implements the store interfaces on top of three JSON
// documents (users.json, lecturers.json, evaluations.json), each holding a
// JSON array of records.
//
// Files are accessed through an afero.Fs so the same code runs against the
// OS filesystem in production and an in-memory filesystem in tests. Every
// mutation is a full read-modify-write of one file, serialized by a mutex
// and committed with a rename so readers never observe a half-written file.
package jsonfile
