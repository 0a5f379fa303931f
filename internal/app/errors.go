package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords
	// so callers cannot probe which address is registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnknownMonth is returned for month names outside the calendar.
	ErrUnknownMonth = errors.New("unknown month")

	// ErrNotStarted is returned when an operation runs before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrGeneration marks failures of the campaign-generation collaborator,
	// which the HTTP layer reports as an upstream error.
	ErrGeneration = errors.New("campaign generation failed")
)
