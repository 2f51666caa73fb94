package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource conflict")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSeriesMismatch   = errors.New("history and previous forecast lengths differ")
	ErrInvalidThreshold = errors.New("threshold low must not exceed high")
)
