package core

import "strings"

// MaxEmbedTextChars bounds the normalized text fed to the embedding model.
// Sentence-embedding models truncate input past a few hundred tokens anyway,
// so anything beyond this budget adds latency without adding signal.
const MaxEmbedTextChars = 2048

// NormalizeText trims leading/trailing whitespace and collapses internal runs
// of whitespace into single spaces. The result is deterministic for a given
// input, which keeps embedding snapshots comparable.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateText cuts s to at most max runes.
func TruncateText(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// EmbedInput builds the canonical text representation of the profile for
// embedding. Fields are concatenated in a fixed order with labeled sections,
// normalized, and truncated to MaxEmbedTextChars. Returns the empty string
// when every text-bearing field is empty; callers must treat that as "not
// embeddable" and never feed it to an embedder.
func (p *ExpertProfile) EmbedInput() string {
	var parts []string

	if name := NormalizeText(p.Name); name != "" {
		parts = append(parts, "Name: "+name)
	}
	if bio := NormalizeText(p.Bio); bio != "" {
		parts = append(parts, "Experience: "+bio)
	}
	if skills := joinNormalized(p.Skills); skills != "" {
		parts = append(parts, "Skills: "+skills)
	}
	if domains := joinNormalized(p.Domains); domains != "" {
		parts = append(parts, "Domains: "+domains)
	}

	return TruncateText(strings.Join(parts, " | "), MaxEmbedTextChars)
}

func joinNormalized(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if n := NormalizeText(item); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	return strings.Join(cleaned, ", ")
}
