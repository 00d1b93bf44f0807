package ai

import "errors"

var (
	// ErrEmptyInput is returned when text to embed is empty after
	// normalization. Callers must treat such records as "not embeddable";
	// a zero vector is never substituted.
	ErrEmptyInput = errors.New("nothing to embed: input text is empty")

	// ErrModelUnavailable is returned when the embedding model could not be
	// loaded or reached.
	ErrModelUnavailable = errors.New("embedding model unavailable")
)
