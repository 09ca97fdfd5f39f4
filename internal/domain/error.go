package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrAlreadyExists       = errors.New("entity already exists")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrForbidden           = errors.New("pro subscription required")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrGenerationFailed    = errors.New("failed to get a response from the AI")
	ErrInvalidExecContext  = errors.New("invalid executor context")
)
