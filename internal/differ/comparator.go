package differ

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexflow/semdiff/internal/classifier"
	"github.com/lexflow/semdiff/internal/config"
	"github.com/lexflow/semdiff/internal/models"
)

// SectionComparator walks paired sections and flags modified pairs the
// lexical diff may have missed or merged.
//
// Alignment is purely positional: section i of the old version is compared
// with section i of the new version. Insertions or removals mid-document
// shift the pairing and can misattribute changes; detecting those robustly
// is a planned extension, not current behavior.
type SectionComparator struct {
	classifier  *classifier.SignificanceClassifier
	scorer      SimilarityScorer
	confidence  float64
	excerptLen  int
	dedupPrefix int
	logger      zerolog.Logger
}

// NewSectionComparator creates a section comparator. The scorer is optional;
// when nil, ambiguous pairs keep their heuristic classification.
func NewSectionComparator(cfg config.DiffConfig, sc *classifier.SignificanceClassifier, scorer SimilarityScorer, logger zerolog.Logger) *SectionComparator {
	confidence := cfg.SectionConfidence
	if confidence <= 0 {
		confidence = config.DefaultDiffSectionConfidence
	}
	excerptLen := cfg.MaxExcerptLength
	if excerptLen <= 0 {
		excerptLen = config.DefaultDiffMaxExcerptLength
	}
	dedupPrefix := cfg.DedupPrefixLength
	if dedupPrefix <= 0 {
		dedupPrefix = config.DefaultDiffDedupPrefixLength
	}
	return &SectionComparator{
		classifier:  sc,
		scorer:      scorer,
		confidence:  confidence,
		excerptLen:  excerptLen,
		dedupPrefix: dedupPrefix,
		logger:      logger.With().Str("component", "SectionComparator").Logger(),
	}
}

// Compare classifies each positionally paired section whose normalized texts
// differ, skipping formatting-only pairs and pairs already captured by the
// lexical diff. Pairs that only the default classification bucket could
// settle are routed to the scorer when one is configured.
func (c *SectionComparator) Compare(ctx context.Context, oldSections, newSections []models.DocumentSection, docCtx models.DocumentContext, existing []models.SemanticChange) ([]models.SemanticChange, error) {
	pairCount := len(oldSections)
	if len(newSections) < pairCount {
		pairCount = len(newSections)
	}

	var changes []models.SemanticChange
	for i := 0; i < pairCount; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		oldSection := oldSections[i]
		newSection := newSections[i]

		if oldSection.NormalizedText == newSection.NormalizedText {
			continue
		}

		significance, rule, err := c.classifier.ClassifyWithRule(oldSection.RawText, newSection.RawText, docCtx.Language)
		if err != nil {
			return nil, err
		}
		if significance == models.SignificanceFormatting {
			continue
		}

		if c.isDuplicate(oldSection, newSection, existing) {
			continue
		}

		change := models.SemanticChange{
			ChangeType:   models.ChangeTypeModified,
			Significance: significance,
			BeforeText:   truncateExcerpt(oldSection.RawText, c.excerptLen),
			AfterText:    truncateExcerpt(newSection.RawText, c.excerptLen),
			SectionPath:  oldSection.Path,
			Confidence:   c.confidence,
		}

		if c.scorer != nil && rule == classifier.RuleDefaultSubstantive {
			score := c.scorer.Score(ctx, oldSection.RawText, newSection.RawText, docCtx)
			change.ChangeType = score.ChangeType
		}

		changes = append(changes, change)
	}

	return changes, nil
}

// isDuplicate reports whether a section pair was already captured by an
// existing change: any emitted before-text containing the leading characters
// of the old section, or after-text containing the leading characters of the
// new section, counts as overlap.
func (c *SectionComparator) isDuplicate(oldSection, newSection models.DocumentSection, existing []models.SemanticChange) bool {
	oldPrefix := truncateExcerpt(oldSection.RawText, c.dedupPrefix)
	newPrefix := truncateExcerpt(newSection.RawText, c.dedupPrefix)

	for _, change := range existing {
		if oldPrefix != "" && strings.Contains(change.BeforeText, oldPrefix) {
			return true
		}
		if newPrefix != "" && strings.Contains(change.AfterText, newPrefix) {
			return true
		}
	}
	return false
}
