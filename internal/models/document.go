package models

// Language identifies the declared language of a document.
type Language string

const (
	// LanguageRomanian covers documents drafted in Romanian.
	LanguageRomanian Language = "ro"
	// LanguageEnglish covers documents drafted in English.
	LanguageEnglish Language = "en"
)

// SupportedLanguages lists every language the engine accepts.
// Pattern tables are validated against this list at startup.
func SupportedLanguages() []Language {
	return []Language{LanguageRomanian, LanguageEnglish}
}

// IsValid reports whether the language is one the engine accepts.
func (l Language) IsValid() bool {
	switch l {
	case LanguageRomanian, LanguageEnglish:
		return true
	}
	return false
}

// DocumentContext is the request-scoped descriptor for a diff computation.
// It is passed through the pipeline and never mutated.
type DocumentContext struct {
	DocumentID string   `json:"document_id"`
	Language   Language `json:"language"`
	FirmID     string   `json:"firm_id,omitempty"`
}

// DocumentSection is a contiguous span of one document version.
// Sections are created once by the parser and consumed read-only.
type DocumentSection struct {
	ID             string `json:"id"`
	Path           string `json:"path"` // e.g. "Art. 5.2" or "§3"
	RawText        string `json:"raw_text"`
	NormalizedText string `json:"normalized_text"`
	StartOffset    int    `json:"start_offset"`
	EndOffset      int    `json:"end_offset"`
}
