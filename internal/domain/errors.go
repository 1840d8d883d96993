package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidStatus      = errors.New("invalid status value")

	// Image upload validation errors. These are raised before any storage or
	// database I/O happens.
	ErrInvalidContentType = errors.New("content type is not an accepted image type")
	ErrInvalidCategory    = errors.New("image category is not in the accepted set")
	ErrEmptyPayload       = errors.New("uploaded file is empty")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")

	// Storage backend errors. Backends translate their SDK errors into these
	// so callers never depend on which variant is active.
	ErrStorageUnavailable = errors.New("object storage is unreachable")
	ErrUploadRejected     = errors.New("object storage rejected the write")
	ErrObjectNotFound     = errors.New("object does not exist in storage")

	// ErrUploadFailed covers both a failed backend write and a write that
	// reported success but whose object could not be verified afterwards.
	// When it is returned, no database row was created.
	ErrUploadFailed = errors.New("image upload to storage failed")
)
