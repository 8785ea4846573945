package classifier

import (
	"regexp"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/models"
)

// PatternSet holds the compiled legal-term patterns for one language.
type PatternSet struct {
	// Critical patterns cover liability-bearing vocabulary. A difference in
	// their presence or matched substrings makes a change Critical.
	Critical []*regexp.Regexp
	// Substantive patterns cover amounts, dates, terms, and party roles.
	Substantive []*regexp.Regexp
}

// patternTables maps each supported language to its pattern set. There is
// deliberately no default-language fallback: misclassifying one language's
// documents with another's patterns is worse than failing fast.
var patternTables = map[models.Language]PatternSet{
	models.LanguageEnglish: {
		Critical: compileAll(
			`(?i)\bliabilit(?:y|ies)\b`,
			`(?i)\bdamages?\b`,
			`(?i)\bpenalt(?:y|ies)\b`,
			`(?i)\bterminat(?:e|es|ed|ion)\b`,
			`(?i)\bwarrant(?:y|ies)\b`,
			`(?i)\bindemnif(?:y|ies|ied|ication)\b`,
			`(?i)\bforce\s+majeure\b`,
			`(?i)\blimitation\s+of\s+liability\b`,
		),
		Substantive: compileAll(
			`(?i)\d[\d.,]*\s*(?:usd|eur|ron|lei|dollars?|euros?)\b`,
			`[$€£]\s*\d[\d.,]*`,
			`\b\d{1,2}[-./]\d{1,2}[-./]\d{2,4}\b`,
			`(?i)\b\d+\s*(?:day|week|month|year)s?\b`,
			`(?i)\b(?:term|period|deadline|due\s+date|expir\w+)\b`,
			`(?i)\b(?:buyer|seller|lessor|lessee|contractor|supplier|client|licensor|licensee)\b`,
		),
	},
	models.LanguageRomanian: {
		Critical: compileAll(
			`(?i)\br[ăa]spundere\w*\b`,
			`(?i)\bdaune\w*\b`,
			`(?i)\bpenalit[ăa][țt]\w*\b`,
			`(?i)\brezilier\w*\b`,
			`(?i)\bgaran[țt]i\w*\b`,
			`(?i)\bdesp[ăa]gubir\w*\b`,
			`(?i)\bfor[țt][ăa]\s+major[ăa]\b`,
			`(?i)\blimitarea\s+r[ăa]spunderii\b`,
		),
		Substantive: compileAll(
			`(?i)\d[\d.,]*\s*(?:ron|lei|eur|euro|usd)\b`,
			`[$€£]\s*\d[\d.,]*`,
			`\b\d{1,2}[-./]\d{1,2}[-./]\d{2,4}\b`,
			`(?i)\b\d+\s*(?:zi|zile|s[ăa]pt[ăa]m[âa]n[ăa]|s[ăa]pt[ăa]m[âa]ni|lun[ăa]|luni|ani?)\b`,
			`(?i)\b(?:termen\w*|perioad\w*|scaden[țt]\w*)\b`,
			`(?i)\b(?:v[âa]nz[ăa]tor\w*|cump[ăa]r[ăa]tor\w*|locator\w*|locatar\w*|prestator\w*|beneficiar\w*|furnizor\w*)\b`,
		),
	},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// validatePatternTables checks that every supported language carries a
// complete pattern set. Called at classifier construction.
func validatePatternTables() error {
	for _, lang := range models.SupportedLanguages() {
		set, ok := patternTables[lang]
		if !ok {
			return errorwrapper.NewValidationError("language", lang, "missing pattern table")
		}
		if len(set.Critical) == 0 {
			return errorwrapper.NewValidationError("language", lang, "empty critical pattern list")
		}
		if len(set.Substantive) == 0 {
			return errorwrapper.NewValidationError("language", lang, "empty substantive pattern list")
		}
	}
	return nil
}
