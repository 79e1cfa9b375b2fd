// Package apperr holds the sentinel errors checked at the handler
// boundary.
package apperr

import "errors"

var (
	ErrNotFound     = errors.New("media not found")
	ErrInvalidFile  = errors.New("invalid file")
	ErrUploadFailed = errors.New("file upload failed")
	ErrValidation   = errors.New("validation failed")
)
