// Package repository implements data access over MySQL. This file defines
// sentinel errors shared across repositories so handlers can translate
// failure kinds into HTTP statuses without string matching.
package repository

import "errors"

// ErrForbidden is returned when the caller operates on a resource owned
// by someone else. Handlers translate it into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed due to
// conflicting state, e.g. accepting a proposal on a job that is no
// longer open. Handlers translate it into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidTransition is returned when a status update does not follow
// the allowed transition table. Handlers translate it into HTTP 422.
var ErrInvalidTransition = errors.New("invalid status transition")
