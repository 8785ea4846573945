package differ

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/lexflow/semdiff/internal/classifier"
	"github.com/lexflow/semdiff/internal/config"
	"github.com/lexflow/semdiff/internal/models"
)

// WordSpan is one word-granularity diff span. At most one of Added/Removed
// is set; both false means the span is common to both texts.
type WordSpan struct {
	Text    string
	Added   bool
	Removed bool
}

// LexicalEngine runs a word-level longest-common-subsequence diff between
// two normalized full-text strings. It does no normalization itself; both
// inputs must already be normalized.
type LexicalEngine struct {
	dmp        *diffmatchpatch.DiffMatchPatch
	classifier *classifier.SignificanceClassifier
	confidence float64
	excerptLen int
	logger     zerolog.Logger
}

// NewLexicalEngine creates a lexical diff engine.
func NewLexicalEngine(cfg config.DiffConfig, sc *classifier.SignificanceClassifier, logger zerolog.Logger) *LexicalEngine {
	confidence := cfg.LexicalConfidence
	if confidence <= 0 {
		confidence = config.DefaultDiffLexicalConfidence
	}
	excerptLen := cfg.MaxExcerptLength
	if excerptLen <= 0 {
		excerptLen = config.DefaultDiffMaxExcerptLength
	}
	return &LexicalEngine{
		dmp:        diffmatchpatch.New(),
		classifier: sc,
		confidence: confidence,
		excerptLen: excerptLen,
		logger:     logger.With().Str("component", "LexicalEngine").Logger(),
	}
}

// DiffWords produces word-granularity spans between two normalized texts.
// Words are mapped to placeholder runes so diffmatchpatch computes the LCS
// over whole words instead of characters.
func (le *LexicalEngine) DiffWords(before, after string) []WordSpan {
	encodedBefore := strings.ReplaceAll(before, " ", "\n")
	encodedAfter := strings.ReplaceAll(after, " ", "\n")

	c1, c2, wordArray := le.dmp.DiffLinesToChars(encodedBefore, encodedAfter)
	diffs := le.dmp.DiffMain(c1, c2, false)
	diffs = le.dmp.DiffCharsToLines(diffs, wordArray)

	spans := make([]WordSpan, 0, len(diffs))
	for _, d := range diffs {
		span := WordSpan{Text: strings.ReplaceAll(d.Text, "\n", " ")}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			span.Added = true
		case diffmatchpatch.DiffDelete:
			span.Removed = true
		}
		spans = append(spans, span)
	}
	return spans
}

// DetectChanges diffs two normalized texts and classifies every added or
// removed span. Spans whose significance is Formatting are discarded.
func (le *LexicalEngine) DetectChanges(before, after string, language models.Language) ([]models.SemanticChange, error) {
	spans := le.DiffWords(before, after)

	var changes []models.SemanticChange
	for _, span := range spans {
		if !span.Added && !span.Removed {
			continue
		}

		text := strings.TrimSpace(span.Text)
		if text == "" {
			continue
		}

		change := models.SemanticChange{
			ChangeType: models.ChangeTypeAdded,
			AfterText:  truncateExcerpt(text, le.excerptLen),
			Confidence: le.confidence,
		}
		beforeSide, afterSide := "", text
		if span.Removed {
			change.ChangeType = models.ChangeTypeRemoved
			change.BeforeText = truncateExcerpt(text, le.excerptLen)
			change.AfterText = ""
			beforeSide, afterSide = text, ""
		}

		significance, err := le.classifier.Classify(beforeSide, afterSide, language)
		if err != nil {
			return nil, err
		}
		if significance == models.SignificanceFormatting {
			continue
		}
		change.Significance = significance

		changes = append(changes, change)
	}

	le.logger.Debug().
		Int("spans", len(spans)).
		Int("changes", len(changes)).
		Msg("Lexical diff completed")

	return changes, nil
}

// truncateExcerpt bounds excerpt text stored on a change. The cut never
// lands mid-rune so truncated excerpts stay valid UTF-8.
func truncateExcerpt(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
