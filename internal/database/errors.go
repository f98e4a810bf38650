package database

import "errors"

var (
	// ErrConflict is returned when a write violates a uniqueness constraint
	// (duplicate roll number).
	ErrConflict = errors.New("record already exists")

	// ErrNotFound is returned when a write references a missing student.
	ErrNotFound = errors.New("record not found")

	// ErrNotInitialized is returned by the provider getters when no storage
	// backend has been registered.
	ErrNotInitialized = errors.New("PostgreSQL backend not initialized: DATABASE_URL is required")
)
