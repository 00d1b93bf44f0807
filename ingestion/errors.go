package ingestion

import "errors"

var (
	// ErrExpertRepositoryRequired is returned when an expert repository is not provided.
	ErrExpertRepositoryRequired = errors.New("expert repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")
)
