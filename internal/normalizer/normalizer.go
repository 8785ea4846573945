// Package normalizer canonicalizes legal document text so that
// formatting-only edits collapse to identical strings.
package normalizer

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// Page-number and header artifacts left over from text extraction,
	// e.g. "Page 3 of 12" or "Pagina 3 din 12".
	pageArtifactEnRe = regexp.MustCompile(`(?i)\bpage\s+\d+\s+of\s+\d+\b`)
	pageArtifactRoRe = regexp.MustCompile(`(?i)\bpagina\s+\d+\s+din\s+\d+\b`)

	// Legal citation abbreviations get exactly one space after the dot.
	citationSpacingRe = regexp.MustCompile(`(?i)\b(art|nr)\.[ ]*`)

	// D.M.YYYY and DD.MM.YYYY dates become dash-separated.
	dottedDateRe = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`)
)

var quoteDashReplacer = strings.NewReplacer(
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"„", `"`, // double low-9 quotation mark
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark
	"‚", "'", // single low-9 quotation mark
	"«", `"`, // left guillemet
	"»", `"`, // right guillemet
	"–", "-", // en dash
	"—", "-", // em dash
)

// Normalize canonicalizes whitespace, quotes, dashes, page artifacts,
// citation spacing, and date formats. It is pure, total, and idempotent.
// Rule order matters: later rules assume whitespace is already collapsed.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	out := whitespaceRe.ReplaceAllString(text, " ")
	out = quoteDashReplacer.Replace(out)
	out = pageArtifactEnRe.ReplaceAllString(out, "")
	out = pageArtifactRoRe.ReplaceAllString(out, "")
	// Stripping artifacts can leave doubled spaces behind
	out = whitespaceRe.ReplaceAllString(out, " ")
	out = citationSpacingRe.ReplaceAllString(out, "${1}. ")
	out = dottedDateRe.ReplaceAllString(out, "$1-$2-$3")
	return strings.TrimSpace(out)
}

// NormalizeStrict applies Normalize and lowercases the result. It is used
// only for the formatting-equality test in significance classification;
// section-path extraction needs the case-preserving form.
func NormalizeStrict(text string) string {
	return strings.ToLower(Normalize(text))
}

// FormattingEqual reports whether two texts differ only in formatting.
func FormattingEqual(a, b string) bool {
	return NormalizeStrict(a) == NormalizeStrict(b)
}
