// Package classifier assigns a significance tier to a before/after text pair.
package classifier

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/config"
	"github.com/lexflow/semdiff/internal/models"
	"github.com/lexflow/semdiff/internal/normalizer"
)

// Rule names, reported alongside the classification so callers can tell
// which link of the chain decided.
const (
	RuleFormattingEquality = "formatting_equality"
	RuleCriticalTerms      = "critical_terms"
	RuleSubstantiveTerms   = "substantive_terms"
	RuleSimilarityMinor    = "similarity_minor_wording"
	RuleDefaultSubstantive = "default_substantive"
)

// rule is one link of the classification chain: the first rule whose
// predicate matches decides the significance.
type rule struct {
	name string
	eval func(before, after string, set PatternSet) (models.ChangeSignificance, bool)
}

// SignificanceClassifier classifies changes through an explicit ordered rule
// chain: formatting equality, then critical terms, then substantive terms,
// then edit-distance similarity, then a default bucket. Earlier rules take
// priority even when a later pattern would also match.
type SignificanceClassifier struct {
	rules  []rule
	logger zerolog.Logger
}

// NewSignificanceClassifier builds the rule chain and verifies that every
// supported language has a complete pattern table.
func NewSignificanceClassifier(cfg config.DiffConfig, logger zerolog.Logger) (*SignificanceClassifier, error) {
	if err := validatePatternTables(); err != nil {
		return nil, errorwrapper.WrapError(err, "incomplete significance pattern tables")
	}

	threshold := cfg.MinorWordingSimilarity
	if threshold <= 0 || threshold >= 1 {
		threshold = config.DefaultDiffSimilarityMinor
	}

	sc := &SignificanceClassifier{
		logger: logger.With().Str("component", "SignificanceClassifier").Logger(),
	}
	sc.rules = []rule{
		{name: RuleFormattingEquality, eval: formattingRule},
		{name: RuleCriticalTerms, eval: criticalRule},
		{name: RuleSubstantiveTerms, eval: substantiveRule},
		{name: RuleSimilarityMinor, eval: similarityRule(threshold)},
		{name: RuleDefaultSubstantive, eval: defaultRule},
	}
	return sc, nil
}

// Classify returns the significance tier for a before/after pair.
// An unrecognized language is a caller contract violation and fails fast;
// there is no silent fallback to another language's patterns.
func (sc *SignificanceClassifier) Classify(beforeText, afterText string, language models.Language) (models.ChangeSignificance, error) {
	sig, _, err := sc.ClassifyWithRule(beforeText, afterText, language)
	return sig, err
}

// ClassifyWithRule additionally reports the name of the deciding rule.
func (sc *SignificanceClassifier) ClassifyWithRule(beforeText, afterText string, language models.Language) (models.ChangeSignificance, string, error) {
	set, ok := patternTables[language]
	if !ok {
		return models.SignificanceFormatting, "",
			errorwrapper.WrapError(errorwrapper.ErrUnsupportedLanguage, "no pattern table for language '"+string(language)+"'")
	}

	for _, r := range sc.rules {
		if sig, decided := r.eval(beforeText, afterText, set); decided {
			return sig, r.name, nil
		}
	}

	// The default rule always decides; this is unreachable.
	return models.SignificanceSubstantive, RuleDefaultSubstantive, nil
}

func formattingRule(before, after string, _ PatternSet) (models.ChangeSignificance, bool) {
	if normalizer.FormattingEqual(before, after) {
		return models.SignificanceFormatting, true
	}
	return 0, false
}

func criticalRule(before, after string, set PatternSet) (models.ChangeSignificance, bool) {
	for _, re := range set.Critical {
		beforeMatches := re.FindAllString(before, -1)
		afterMatches := re.FindAllString(after, -1)

		if (len(beforeMatches) > 0) != (len(afterMatches) > 0) {
			return models.SignificanceCritical, true
		}
		if len(beforeMatches) > 0 && serializeMatches(beforeMatches) != serializeMatches(afterMatches) {
			return models.SignificanceCritical, true
		}
	}
	return 0, false
}

func substantiveRule(before, after string, set PatternSet) (models.ChangeSignificance, bool) {
	for _, re := range set.Substantive {
		if serializeMatches(re.FindAllString(before, -1)) != serializeMatches(re.FindAllString(after, -1)) {
			return models.SignificanceSubstantive, true
		}
	}
	return 0, false
}

func similarityRule(threshold float64) func(string, string, PatternSet) (models.ChangeSignificance, bool) {
	return func(before, after string, _ PatternSet) (models.ChangeSignificance, bool) {
		similarity := TextSimilarity(normalizer.Normalize(before), normalizer.Normalize(after))
		if similarity > threshold {
			return models.SignificanceMinorWording, true
		}
		return 0, false
	}
}

func defaultRule(_, _ string, _ PatternSet) (models.ChangeSignificance, bool) {
	// Everything that changed meaningfully but matched no specific pattern.
	return models.SignificanceSubstantive, true
}

// serializeMatches canonicalizes a match list for set comparison. Matches are
// lowercased so case-only differences in matched terms stay non-critical.
func serializeMatches(matches []string) string {
	lowered := make([]string, len(matches))
	for i, m := range matches {
		lowered[i] = strings.ToLower(strings.TrimSpace(m))
	}
	return strings.Join(lowered, "|")
}
