// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// This package contains concrete implementations that use GORM for database
// operations against the PostgreSQL schema in db/migrations. The interfaces
// they implement are defined in pkg/server/store.
package gorm
