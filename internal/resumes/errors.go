package resumes

import "errors"

var (
	// ErrNotFound indicates the resume does not exist for the caller.
	ErrNotFound = errors.New("resume not found")
	// ErrInvalidInput indicates the request failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEntryNotFound indicates a collection entry or skill index is missing.
	ErrEntryNotFound = errors.New("entry not found")
)
