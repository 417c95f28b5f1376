package service

import "errors"

var (
	// ErrValidation marks missing/malformed input and state-conflict errors;
	// handlers map it to 400.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden marks ownership mismatches; handlers map it to 403.
	ErrForbidden = errors.New("forbidden")
)
