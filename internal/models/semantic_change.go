package models

import "time"

// ChangeType defines the kind of difference detected between two versions.
type ChangeType string

const (
	// ChangeTypeAdded indicates content present only in the newer version.
	ChangeTypeAdded ChangeType = "added"
	// ChangeTypeRemoved indicates content present only in the older version.
	ChangeTypeRemoved ChangeType = "removed"
	// ChangeTypeModified indicates content that exists in both versions but differs.
	ChangeTypeModified ChangeType = "modified"
	// ChangeTypeMoved is reserved for section-reordering detection. The core
	// detection paths never emit it; it only appears as a pass-through mapping
	// from the external classifier's "moved" label.
	ChangeTypeMoved ChangeType = "moved"
)

// ChangeSignificance ranks how much a change matters legally, least to most.
type ChangeSignificance int

const (
	// SignificanceFormatting marks changes that collapse under normalization.
	// They are computed internally but never reach an emitted result.
	SignificanceFormatting ChangeSignificance = iota
	// SignificanceMinorWording marks small rephrasings with high text similarity.
	SignificanceMinorWording
	// SignificanceSubstantive marks changes to amounts, dates, terms, or parties.
	SignificanceSubstantive
	// SignificanceCritical marks changes touching liability-bearing vocabulary.
	SignificanceCritical
)

// String returns the identifier used in serialized results.
func (s ChangeSignificance) String() string {
	switch s {
	case SignificanceFormatting:
		return "formatting"
	case SignificanceMinorWording:
		return "minor_wording"
	case SignificanceSubstantive:
		return "substantive"
	case SignificanceCritical:
		return "critical"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so significance serializes
// by name in JSON results.
func (s ChangeSignificance) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SemanticChange is one detected difference between two document versions.
// Instances are never mutated after creation.
type SemanticChange struct {
	ID           string             `json:"id"`
	ChangeType   ChangeType         `json:"change_type"`
	Significance ChangeSignificance `json:"significance"`
	BeforeText   string             `json:"before_text"`
	AfterText    string             `json:"after_text"`
	SectionPath  string             `json:"section_path,omitempty"`
	Summary      string             `json:"summary,omitempty"`
	Confidence   float64            `json:"confidence"`
}

// ChangeBreakdown tallies emitted changes per significance tier.
// Formatting changes are filtered before aggregation, so Formatting is
// always zero by construction; the field exists for result-shape stability.
type ChangeBreakdown struct {
	Formatting   int `json:"formatting"`
	MinorWording int `json:"minor_wording"`
	Substantive  int `json:"substantive"`
	Critical     int `json:"critical"`
}

// SemanticDiffResult is the output aggregate of one diff computation.
// FromVersionID/ToVersionID are filled in by the caller after computation;
// the diff engine only knows content, not version identity.
type SemanticDiffResult struct {
	DocumentID    string           `json:"document_id"`
	FromVersionID string           `json:"from_version_id,omitempty"`
	ToVersionID   string           `json:"to_version_id,omitempty"`
	Changes       []SemanticChange `json:"changes"`
	TotalChanges  int              `json:"total_changes"`
	Breakdown     ChangeBreakdown  `json:"breakdown"`
	ComputedAt    time.Time        `json:"computed_at"`
}
