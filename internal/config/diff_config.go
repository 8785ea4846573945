package config

// DiffConfig defines configuration for the semantic diff engine
type DiffConfig struct {
	// MaxSections caps how many sections the parser emits per document.
	// Sections beyond the cap are dropped, not merged; very long documents
	// must be pre-chunked by the caller.
	MaxSections int `json:"max_sections,omitempty" yaml:"max_sections,omitempty" validate:"omitempty,min=1"`
	// MaxExcerptLength bounds before/after excerpts stored on a change.
	MaxExcerptLength int `json:"max_excerpt_length,omitempty" yaml:"max_excerpt_length,omitempty" validate:"omitempty,min=1"`
	// MinorWordingSimilarity is the strict lower bound for the MinorWording
	// tier: similarity must exceed it, equality is not enough.
	MinorWordingSimilarity float64 `json:"minor_wording_similarity,omitempty" yaml:"minor_wording_similarity,omitempty" validate:"omitempty,gt=0,lt=1"`
	// LexicalConfidence is assigned to changes sourced from the word-level diff.
	LexicalConfidence float64 `json:"lexical_confidence,omitempty" yaml:"lexical_confidence,omitempty" validate:"omitempty,gt=0,lte=1"`
	// SectionConfidence is assigned to changes sourced from section comparison.
	SectionConfidence float64 `json:"section_confidence,omitempty" yaml:"section_confidence,omitempty" validate:"omitempty,gt=0,lte=1"`
	// DedupPrefixLength is how many leading characters of a section's text
	// are matched against existing changes when deduplicating.
	DedupPrefixLength int `json:"dedup_prefix_length,omitempty" yaml:"dedup_prefix_length,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		MaxSections:            DefaultDiffMaxSections,
		MaxExcerptLength:       DefaultDiffMaxExcerptLength,
		MinorWordingSimilarity: DefaultDiffSimilarityMinor,
		LexicalConfidence:      DefaultDiffLexicalConfidence,
		SectionConfidence:      DefaultDiffSectionConfidence,
		DedupPrefixLength:      DefaultDiffDedupPrefixLength,
	}
}
