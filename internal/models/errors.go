package models

import "errors"

// Domain errors that can be returned by stores
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername indicates a credential with the same username already exists
	ErrDuplicateUsername = errors.New("duplicate username")

	// ErrDuplicateNationalID indicates an account with the same national ID already exists
	ErrDuplicateNationalID = errors.New("duplicate national id")
)
