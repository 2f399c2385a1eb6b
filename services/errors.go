package services

import "errors"

// Sentinel errors the controllers map to HTTP status codes.
// Services wrap these with context via fmt.Errorf("%w: ...").
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)
