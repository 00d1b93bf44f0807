package reembed

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmptyEmbedInput is returned when a profile has no text to embed.
	ErrEmptyEmbedInput = errors.New("profile has no text to embed")
)
