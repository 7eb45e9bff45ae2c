package domain

import (
	"errors"
	"strings"
)

// Validating constructors for scalar fields. Each returns the normalized
// value or an error; callers treat the error as a validation failure.

var (
	ErrInvalidEmail      = errors.New("invalid email address")
	ErrInvalidName       = errors.New("name must be between 1 and 120 characters")
	ErrInvalidOrderValue = errors.New("order must be a non-negative integer")
	ErrInvalidSetReps    = errors.New("reps must be a positive integer")
	ErrInvalidSetWeight  = errors.New("weight must be zero or positive")
	ErrInvalidPagination = errors.New("skip must be >= 0 and take between 1 and 100")
)

const maxNameLength = 120

// NewEmail lowercases and trims the address and checks the basic shape.
// Full RFC validation is left to the mail provider; this catches typos.
func NewEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NewName validates a display name (user, workout, exercise or muscle).
func NewName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || len(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// NewOrderValue validates an explicit ordinal supplied by a caller.
func NewOrderValue(raw int) (int, error) {
	if raw < 0 {
		return 0, ErrInvalidOrderValue
	}
	return raw, nil
}

// NewSetReps validates the repetition count of a set.
func NewSetReps(raw int) (int, error) {
	if raw <= 0 {
		return 0, ErrInvalidSetReps
	}
	return raw, nil
}

// NewSetWeight validates the weight of a set. Zero is allowed for
// bodyweight movements.
func NewSetWeight(raw float64) (float64, error) {
	if raw < 0 {
		return 0, ErrInvalidSetWeight
	}
	return raw, nil
}

// NewPagination validates a skip/take window and applies the default
// page size when take is zero.
func NewPagination(skip, take int64) (int64, int64, error) {
	if take == 0 {
		take = 20
	}
	if skip < 0 || take < 1 || take > 100 {
		return 0, 0, ErrInvalidPagination
	}
	return skip, take, nil
}
