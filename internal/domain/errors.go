package domain

import "errors"

// Sentinel errors shared across entities. Services wrap these with context;
// controllers match them with errors.Is to pick the response status.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
