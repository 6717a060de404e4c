package types

import "errors"

// Domain errors for configuration and chunk validation
var (
	// ErrInvalidConfig wraps all construction-time configuration failures.
	ErrInvalidConfig = errors.New("invalid chunking configuration")

	// Chunk validation errors
	ErrMissingChunkID    = errors.New("chunk ID is required")
	ErrMissingDocumentID = errors.New("document ID is required")
	ErrEmptyContent      = errors.New("content cannot be empty")
	ErrInvalidSpan       = errors.New("invalid chunk span")
)
