// Package db holds the SQL migrations of the postgres storage backend.
//
// The migrations are embedded for builds with the embed_migrations tag;
// other builds read them from db/migrations on disk.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
