package service

import "errors"

// Service-level errors surfaced to the HTTP layer
var (
	// ErrUserNotFound is returned when the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput is returned when a registration field fails validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrWrongPassword is returned when a presented password does not verify
	ErrWrongPassword = errors.New("invalid password")

	// ErrSamePassword is returned when a password change reuses the old password
	ErrSamePassword = errors.New("new password can't be same as old password")

	// ErrWeakPassword is returned when a password does not satisfy the policy
	ErrWeakPassword = errors.New("password format incorrect")

	// ErrTokenReused is returned when a presented refresh token does not match
	// the stored one: it was already rotated, or stolen. Callers must treat
	// this as a forced logout.
	ErrTokenReused = errors.New("refresh token is expired or used")

	// ErrTokenGeneration wraps signing failures so key details never leak
	ErrTokenGeneration = errors.New("error generating tokens")

	// ErrNoResults is returned when a query matches nothing
	ErrNoResults = errors.New("no records found")

	// ErrNothingToUpdate is returned when a profile update carries no
	// effective changes
	ErrNothingToUpdate = errors.New("nothing to update")

	// ErrUploadFailed is returned when the image hosting collaborator fails
	ErrUploadFailed = errors.New("error uploading image")
)
