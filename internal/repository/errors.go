package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when trying to create a user with an existing email
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrRefreshTokenMismatch is returned when a conditional refresh token
	// rotation finds a stored value different from the presented one
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")
)
