// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service orchestrates the category operations: it sequences
// the tree engine around the persistence transaction and owns the
// operation-level error taxonomy.
package service

import "errors"

var (
	// ErrNotFound means a referenced category id does not exist.
	ErrNotFound = errors.New("category not found")

	// ErrDeleteBlocked means the cascade would delete categories that
	// still have papers filed under them.
	ErrDeleteBlocked = errors.New("category delete blocked")
)

// ValidationError rejects bad user input before any write happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}
