package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Text without formatting", Normalize("Text  without   formatting"))
	assert.Equal(t, "a b c", Normalize("a\nb\t c"))
	assert.Equal(t, "one two", Normalize("one\r\n\r\ntwo"))
}

func TestNormalize_NormalizesQuotesAndDashes(t *testing.T) {
	assert.Equal(t, `"quoted"`, Normalize("“quoted”"))
	assert.Equal(t, "'single'", Normalize("‘single’"))
	assert.Equal(t, `"ghilimele"`, Normalize("«ghilimele»"))
	assert.Equal(t, "a - b", Normalize("a – b"))
	assert.Equal(t, "a - b", Normalize("a — b"))
}

func TestNormalize_StripsPageArtifacts(t *testing.T) {
	assert.Equal(t, "Intro more text", Normalize("Intro Page 2 of 10 more text"))
	assert.Equal(t, "Introducere text", Normalize("Introducere Pagina 3 din 12 text"))
	assert.Equal(t, "Intro text", Normalize("Intro PAGE 1 OF 2 text"))
}

func TestNormalize_CitationSpacing(t *testing.T) {
	assert.Equal(t, "Art. 5 prevede", Normalize("Art.5 prevede"))
	assert.Equal(t, "Art. 5 prevede", Normalize("Art.   5 prevede"))
	assert.Equal(t, "Nr. 12 din registru", Normalize("Nr.12 din registru"))
	// case is preserved for section-path extraction
	assert.Equal(t, "art. 5", Normalize("art.5"))
}

func TestNormalize_DottedDates(t *testing.T) {
	assert.Equal(t, "15-03-2024", Normalize("15.03.2024"))
	assert.Equal(t, "1-2-2024", Normalize("1.2.2024"))
	// version-like numerals without a 4-digit year are left alone
	assert.Equal(t, "5.2.1", Normalize("5.2.1"))
}

func TestNormalize_Trims(t *testing.T) {
	assert.Equal(t, "text", Normalize("   text \n "))
	assert.Equal(t, "", Normalize("   \n\t "))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"Text  without   formatting",
		"“quoted” — and dashed",
		"Art.5 from 15.03.2024 Page 2 of 10",
		"Pagina 1 din 3\n\nArt.  7 rămâne valabil",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", input)
	}
}

func TestNormalizeStrict_Lowercases(t *testing.T) {
	assert.Equal(t, "payment terms", NormalizeStrict("Payment  TERMS"))
}

func TestFormattingEqual(t *testing.T) {
	assert.True(t, FormattingEqual("Text without formatting", "Text  without   FORMATTING"))
	assert.True(t, FormattingEqual("“quote”", `"quote"`))
	assert.False(t, FormattingEqual("30 days", "90 days"))
}
