package crops

import "errors"

var (
	// ErrNotFound indicates the crop session does not exist or was discarded.
	ErrNotFound = errors.New("crop session not found")
	// ErrInvalidImage indicates the upload could not be decoded.
	ErrInvalidImage = errors.New("invalid image")
	// ErrInvalidInput indicates a malformed request.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNothingToConfirm indicates the session has no renderable source.
	ErrNothingToConfirm = errors.New("nothing to confirm")
)
