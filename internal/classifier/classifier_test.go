package classifier

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/config"
	"github.com/lexflow/semdiff/internal/models"
)

func newTestClassifier(t *testing.T) *SignificanceClassifier {
	t.Helper()
	sc, err := NewSignificanceClassifier(config.NewDefaultDiffConfig(), zerolog.Nop())
	require.NoError(t, err)
	return sc
}

func TestSignificanceClassifier_Classify_FormattingEquality(t *testing.T) {
	sc := newTestClassifier(t)

	sig, err := sc.Classify("Text without formatting", "Text  without   FORMATTING", models.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceFormatting, sig)
}

func TestSignificanceClassifier_Classify_FormattingBeatsLaterRules(t *testing.T) {
	sc := newTestClassifier(t)

	// contains a critical term on both sides but differs only in formatting,
	// so the earlier rule must win
	sig, err := sc.Classify("Liability  applies.", "Liability applies.", models.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceFormatting, sig)
}

func TestSignificanceClassifier_Classify_CriticalTermRemoval(t *testing.T) {
	sc := newTestClassifier(t)

	sig, err := sc.Classify(
		"This is a very important liability limitation clause that protects the party from damages exceeding the contract value.",
		"",
		models.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceCritical, sig)
}

func TestSignificanceClassifier_Classify_CriticalTermRomanian(t *testing.T) {
	sc := newTestClassifier(t)

	sig, err := sc.Classify(
		"Clauza de răspundere pentru daune se aplică integral.",
		"Clauza se aplică integral.",
		models.LanguageRomanian)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceCritical, sig)
}

func TestSignificanceClassifier_Classify_NumericTermChange(t *testing.T) {
	sc := newTestClassifier(t)

	sig, err := sc.Classify("Payment within 30 days", "Payment within 90 days", models.LanguageEnglish)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, sig, models.SignificanceSubstantive)
}

func TestSignificanceClassifier_Classify_CurrencyAmountChange(t *testing.T) {
	sc := newTestClassifier(t)

	sig, err := sc.Classify(
		"The price is 1.000 EUR per unit.",
		"The price is 2.000 EUR per unit.",
		models.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceSubstantive, sig)
}

func TestSignificanceClassifier_Classify_PartyRoleChange(t *testing.T) {
	sc := newTestClassifier(t)

	sig, err := sc.Classify(
		"The Seller shall deliver the goods.",
		"The Buyer shall deliver the goods.",
		models.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceSubstantive, sig)
}

func TestSignificanceClassifier_Classify_MinorWordingAboveThreshold(t *testing.T) {
	sc := newTestClassifier(t)

	// edit distance 1 over length 10: similarity 0.9 > 0.8
	sig, err := sc.Classify("abcdefghij", "abcdefghix", models.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceMinorWording, sig)
}

func TestSignificanceClassifier_Classify_SimilarityBoundaryIsExclusive(t *testing.T) {
	sc := newTestClassifier(t)

	// edit distance 2 over length 10: similarity exactly 0.8, which does NOT
	// exceed the strict threshold, so the default bucket applies
	sig, err := sc.Classify("abcdefghij", "abcdefghxy", models.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceSubstantive, sig)
}

func TestSignificanceClassifier_Classify_DefaultBucket(t *testing.T) {
	sc := newTestClassifier(t)

	sig, rule, err := sc.ClassifyWithRule(
		"completely unrelated wording here",
		"nothing in common with the left side",
		models.LanguageEnglish)

	require.NoError(t, err)
	assert.Equal(t, models.SignificanceSubstantive, sig)
	assert.Equal(t, RuleDefaultSubstantive, rule)
}

func TestSignificanceClassifier_Classify_UnsupportedLanguage(t *testing.T) {
	sc := newTestClassifier(t)

	_, err := sc.Classify("before", "after", models.Language("de"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, errorwrapper.ErrUnsupportedLanguage))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("", ""))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
	assert.Equal(t, 3, levenshteinDistance("abc", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
	assert.Equal(t, 1, levenshteinDistance("term", "tern"))
	assert.Equal(t, 2, levenshteinDistance("flaw", "lawn"))
}

func TestTextSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, TextSimilarity("", ""))
	assert.Equal(t, 1.0, TextSimilarity("same", "same"))
	assert.Equal(t, 0.0, TextSimilarity("", "abcd"))
	assert.InDelta(t, 0.8, TextSimilarity("abcdefghij", "abcdefghxy"), 1e-9)
}
