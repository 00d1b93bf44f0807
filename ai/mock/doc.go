// Package mock provides test doubles for the ai package interfaces.
//
// The default behavior is deterministic: the same text always produces the
// same unit vector, so tests can assert the embedding consistency law without
// an external model server. Behavior can be overridden per test via the
// function fields on MockEmbedder and MockProvider.
package mock
