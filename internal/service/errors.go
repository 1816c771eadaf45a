package service

import "errors"

var (
	// ErrValidation rejects a submission before any network or store call.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden rejects an operation on content the caller does not own.
	ErrForbidden = errors.New("permission denied")

	// ErrAlreadyResolved rejects a second resolution of the same report.
	ErrAlreadyResolved = errors.New("report already resolved")

	// ErrBanned rejects logins from banned accounts.
	ErrBanned = errors.New("account is banned")
)
