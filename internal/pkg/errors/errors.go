package errors

import "errors"

var (
	ErrInvalid       = errors.New("invalid")
	ErrTooMany       = errors.New("too many requests")
	ErrInternal      = errors.New("internal")
	ErrNotConfigured = errors.New("not configured")
)
