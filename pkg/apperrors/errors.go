package apperrors

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrShapeMismatch is returned when the reporting API responds with a JSON
	// document that matches none of the known envelope shapes. Callers treat
	// it the same as a missing building.
	ErrShapeMismatch = errors.New("unrecognized response shape")
)
