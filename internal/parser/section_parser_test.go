package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexflow/semdiff/internal/config"
)

func newTestParser(maxSections int) *SectionParser {
	cfg := config.NewDefaultDiffConfig()
	if maxSections > 0 {
		cfg.MaxSections = maxSections
	}
	return NewSectionParser(cfg, zerolog.Nop())
}

func TestSectionParser_Parse_EmptyDocument(t *testing.T) {
	sp := newTestParser(0)

	assert.Empty(t, sp.Parse(""))
	assert.Empty(t, sp.Parse("   \n\n  \t "))
}

func TestSectionParser_Parse_BlankLineParagraphs(t *testing.T) {
	sp := newTestParser(0)

	sections := sp.Parse("First paragraph.\n\nSecond paragraph.\n\nThird paragraph.")

	require.Len(t, sections, 3)
	assert.Equal(t, "First paragraph.", sections[0].RawText)
	assert.Equal(t, "Second paragraph.", sections[1].RawText)
	assert.Equal(t, "Third paragraph.", sections[2].RawText)
}

func TestSectionParser_Parse_NumberedListMarkers(t *testing.T) {
	sp := newTestParser(0)

	sections := sp.Parse("Preamble text\n1. First obligation\n2. Second obligation")

	require.Len(t, sections, 3)
	assert.Equal(t, "Preamble text", sections[0].RawText)
	assert.Equal(t, "1. First obligation", sections[1].RawText)
	assert.Equal(t, "2. Second obligation", sections[2].RawText)
}

func TestSectionParser_Parse_MarkerFollowedByNewline(t *testing.T) {
	sp := newTestParser(0)

	sections := sp.Parse("Preamble text\n1.\nFirst obligation on its own line")

	require.Len(t, sections, 2)
	assert.Equal(t, "Preamble text", sections[0].RawText)
	assert.Equal(t, "1.\nFirst obligation on its own line", sections[1].RawText)
}

func TestSectionParser_Parse_LegalSectionPaths(t *testing.T) {
	sp := newTestParser(0)

	tests := []struct {
		text string
		path string
	}{
		{"Art. 5.2 Payment obligations apply.", "Art. 5.2"},
		{"Section 3 governs termination.", "Section 3"},
		{"§7 General provisions.", "§7"},
		{"Cap. 2.1 about delivery.", "Cap. 2.1"},
		{"Capitolul 4 despre livrare.", "Capitolul 4"},
	}

	for _, tc := range tests {
		sections := sp.Parse(tc.text)
		require.Len(t, sections, 1, "input %q", tc.text)
		assert.Equal(t, tc.path, sections[0].Path, "input %q", tc.text)
	}
}

func TestSectionParser_Parse_PositionalPathFallback(t *testing.T) {
	sp := newTestParser(0)

	sections := sp.Parse("No markers here.\n\nStill no markers.\n\nNothing.")

	require.Len(t, sections, 3)
	assert.Equal(t, "§1", sections[0].Path)
	assert.Equal(t, "§2", sections[1].Path)
	assert.Equal(t, "§3", sections[2].Path)
}

func TestSectionParser_Parse_DiscardedFragmentsDoNotCount(t *testing.T) {
	sp := newTestParser(0)

	// the middle fragment is whitespace-only and must not consume an index
	sections := sp.Parse("First.\n\n   \n\nSecond.")

	require.Len(t, sections, 2)
	assert.Equal(t, "§1", sections[0].Path)
	assert.Equal(t, "§2", sections[1].Path)
}

func TestSectionParser_Parse_SectionCapDropsOverflow(t *testing.T) {
	sp := newTestParser(2)

	var b strings.Builder
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "Paragraph %d.\n\n", i)
	}

	sections := sp.Parse(b.String())

	assert.Len(t, sections, 2)
}

func TestSectionParser_Parse_Offsets(t *testing.T) {
	sp := newTestParser(0)

	sections := sp.Parse("AA\n\nBBB")

	require.Len(t, sections, 2)
	assert.Equal(t, 0, sections[0].StartOffset)
	assert.Equal(t, 2, sections[0].EndOffset)
	assert.Equal(t, 4, sections[1].StartOffset)
	assert.Equal(t, 7, sections[1].EndOffset)
}

func TestSectionParser_Parse_NormalizedTextPerSection(t *testing.T) {
	sp := newTestParser(0)

	sections := sp.Parse("Some  spaced   text\n\nArt.5 follows")

	require.Len(t, sections, 2)
	assert.Equal(t, "Some spaced text", sections[0].NormalizedText)
	assert.Equal(t, "Art. 5 follows", sections[1].NormalizedText)
}
