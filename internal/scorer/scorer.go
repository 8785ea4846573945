// Package scorer delegates ambiguous section pairs to an external
// classification collaborator, with a local edit-distance fallback.
package scorer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/lexflow/semdiff/internal/classifier"
	"github.com/lexflow/semdiff/internal/config"
	"github.com/lexflow/semdiff/internal/models"
	"github.com/lexflow/semdiff/internal/normalizer"
)

const usageOperationType = "semantic_diff_scoring"

// classifierVerdict is the strict JSON shape requested from the provider.
type classifierVerdict struct {
	Similarity float64 `json:"similarity"`
	ChangeType string  `json:"changeType"`
}

// SemanticScorer scores section pairs through a classification provider.
// It is total: every failure path degrades to the local heuristic.
type SemanticScorer struct {
	provider ClassificationProvider
	tracker  UsageTracker
	cfg      config.ScorerConfig
	logger   zerolog.Logger
}

// NewSemanticScorer creates a scorer. The tracker is optional.
func NewSemanticScorer(cfg config.ScorerConfig, provider ClassificationProvider, tracker UsageTracker, logger zerolog.Logger) *SemanticScorer {
	if cfg.PromptSectionChars <= 0 {
		cfg.PromptSectionChars = config.DefaultScorerPromptSectionChars
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = config.DefaultScorerMaxTokens
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultScorerModel
	}
	return &SemanticScorer{
		provider: provider,
		tracker:  tracker,
		cfg:      cfg,
		logger:   logger.With().Str("component", "SemanticScorer").Logger(),
	}
}

// Score asks the provider for a similarity score and change-type label for
// two section texts. On any provider failure (transport error, malformed
// JSON, out-of-range values) it falls back to local text similarity with
// ChangeType Modified as the safe default.
func (s *SemanticScorer) Score(ctx context.Context, sectionA, sectionB string, docCtx models.DocumentContext) models.SectionScore {
	if s.provider == nil {
		return s.localScore(sectionA, sectionB)
	}

	resp, err := s.provider.Complete(ctx, CompletionRequest{
		Prompt:      s.buildPrompt(sectionA, sectionB),
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Classification provider call failed, using local fallback")
		return s.localScore(sectionA, sectionB)
	}

	verdict, err := parseVerdict(resp.Content)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Malformed provider verdict, using local fallback")
		return s.localScore(sectionA, sectionB)
	}

	s.reportUsage(ctx, docCtx, resp)

	return models.SectionScore{
		Similarity: verdict.Similarity,
		ChangeType: mapChangeType(verdict.ChangeType),
	}
}

// buildPrompt embeds both sections, each truncated to the configured bound,
// and requests strict JSON.
func (s *SemanticScorer) buildPrompt(sectionA, sectionB string) string {
	return fmt.Sprintf(`Compare these two legal document sections and respond with strict JSON only, no prose.

Section A:
%s

Section B:
%s

Respond exactly as {"similarity": <number between 0 and 1>, "changeType": "unchanged"|"added"|"removed"|"moved"}`,
		truncateSection(sectionA, s.cfg.PromptSectionChars),
		truncateSection(sectionB, s.cfg.PromptSectionChars))
}

// localScore is the fallback: edit-distance similarity over normalized text
// and Modified unconditionally.
func (s *SemanticScorer) localScore(sectionA, sectionB string) models.SectionScore {
	return models.SectionScore{
		Similarity: classifier.TextSimilarity(normalizer.Normalize(sectionA), normalizer.Normalize(sectionB)),
		ChangeType: models.ChangeTypeModified,
	}
}

// reportUsage sends token counts to the usage tracker. Tracker failures are
// logged and never block the diff result.
func (s *SemanticScorer) reportUsage(ctx context.Context, docCtx models.DocumentContext, resp *CompletionResponse) {
	if s.tracker == nil {
		return
	}

	record := UsageRecord{
		FirmID:        docCtx.FirmID,
		OperationType: usageOperationType,
		ModelUsed:     resp.Model,
		InputTokens:   resp.InputTokens,
		OutputTokens:  resp.OutputTokens,
		LatencyMs:     resp.LatencyMs,
	}
	if err := s.tracker.RecordUsage(ctx, record); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record provider usage")
	}
}

// parseVerdict parses the provider's content as strict JSON, tolerating
// markdown code fences some models wrap around their output.
func parseVerdict(content string) (*classifierVerdict, error) {
	cleaned := stripCodeFences(content)

	var verdict classifierVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse verdict JSON: %w", err)
	}
	if verdict.Similarity < 0 || verdict.Similarity > 1 {
		return nil, fmt.Errorf("similarity %f out of range [0,1]", verdict.Similarity)
	}
	return &verdict, nil
}

// stripCodeFences removes a wrapping markdown code block if present.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}

// mapChangeType maps the provider's four labels onto ChangeType. "unchanged"
// collapses to Modified: the scorer is only invoked on text already known to
// differ, so an "unchanged" verdict means negligibly modified.
func mapChangeType(label string) models.ChangeType {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "added":
		return models.ChangeTypeAdded
	case "removed":
		return models.ChangeTypeRemoved
	case "moved":
		return models.ChangeTypeMoved
	default:
		return models.ChangeTypeModified
	}
}

// truncateSection bounds a section's contribution to the prompt without
// splitting a multi-byte rune at the boundary.
func truncateSection(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
