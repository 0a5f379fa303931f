package repository

import "errors"

// Sentinel kinds for persistence errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)
