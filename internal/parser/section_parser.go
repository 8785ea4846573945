// Package parser splits raw legal document text into addressable sections.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexflow/semdiff/internal/config"
	"github.com/lexflow/semdiff/internal/models"
	"github.com/lexflow/semdiff/internal/normalizer"
)

var (
	blankLineRe = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

	// A newline followed by a numbered-list marker ("1. " or "1) ") starts
	// a new section even without a blank line in between. Any whitespace
	// counts after the marker, including a line break.
	numberedMarkerRe = regexp.MustCompile(`\n\d+[.)]\s`)

	// Leading legal-section markers followed by a dotted numeral,
	// e.g. "Art. 5.2", "Section 3", "Capitolul 2.1".
	sectionPathRe = regexp.MustCompile(`(?i)^(art\.|articol|section|§|cap\.|capitolul)\s*\d+(\.\d+)*`)
)

// SectionParser segments a document into sections with stable path labels.
//
// Splitting happens on the raw text; normalization is applied per candidate
// section, never to decide where sections are.
type SectionParser struct {
	maxSections int
	logger      zerolog.Logger
}

// NewSectionParser creates a section parser bounded by cfg.MaxSections.
func NewSectionParser(cfg config.DiffConfig, logger zerolog.Logger) *SectionParser {
	maxSections := cfg.MaxSections
	if maxSections <= 0 {
		maxSections = config.DefaultDiffMaxSections
	}
	return &SectionParser{
		maxSections: maxSections,
		logger:      logger.With().Str("component", "SectionParser").Logger(),
	}
}

// Parse splits text into an ordered list of sections.
//
// Sections beyond the configured cap are dropped, not merged; callers that
// rely on completeness for very long documents must pre-chunk.
//
// Offsets advance by len(fragment)+2 per emitted section, assuming a
// two-character separator. This is an approximation: exact offsets are not
// guaranteed when separators vary in width.
func (sp *SectionParser) Parse(text string) []models.DocumentSection {
	fragments := sp.splitFragments(text)

	sections := make([]models.DocumentSection, 0, len(fragments))
	offset := 0
	dropped := 0

	for _, fragment := range fragments {
		trimmed := strings.TrimSpace(fragment)
		if trimmed == "" {
			continue
		}

		if len(sections) >= sp.maxSections {
			dropped++
			continue
		}

		index := len(sections) + 1
		sections = append(sections, models.DocumentSection{
			ID:             fmt.Sprintf("sec-%d", index),
			Path:           extractPath(trimmed, index),
			RawText:        trimmed,
			NormalizedText: normalizer.Normalize(trimmed),
			StartOffset:    offset,
			EndOffset:      offset + len(trimmed),
		})
		offset += len(trimmed) + 2
	}

	if dropped > 0 {
		sp.logger.Warn().
			Int("max_sections", sp.maxSections).
			Int("dropped", dropped).
			Msg("Document exceeds section cap, trailing sections dropped")
	}

	return sections
}

// splitFragments cuts the text at blank-line breaks and before numbered-list
// markers, whichever occurs first at each point.
func (sp *SectionParser) splitFragments(text string) []string {
	var fragments []string
	for _, block := range blankLineRe.Split(text, -1) {
		fragments = append(fragments, splitNumbered(block)...)
	}
	return fragments
}

// splitNumbered cuts a block before each "\n<digits>. " or "\n<digits>) "
// boundary, keeping the marker with the fragment it introduces.
func splitNumbered(block string) []string {
	bounds := numberedMarkerRe.FindAllStringIndex(block, -1)
	if len(bounds) == 0 {
		return []string{block}
	}

	var parts []string
	prev := 0
	for _, b := range bounds {
		// cut after the newline so the marker leads the next fragment
		parts = append(parts, block[prev:b[0]])
		prev = b[0] + 1
	}
	parts = append(parts, block[prev:])
	return parts
}

// extractPath returns the leading legal-section marker if present,
// otherwise a positional path counting only emitted sections.
func extractPath(text string, index int) string {
	if m := sectionPathRe.FindString(text); m != "" {
		return strings.TrimSpace(m)
	}
	return fmt.Sprintf("§%d", index)
}
