package models

// SectionScore is the outcome of scoring one section pair, either by the
// external classification collaborator or by the local fallback heuristic.
type SectionScore struct {
	Similarity float64    `json:"similarity"`
	ChangeType ChangeType `json:"change_type"`
}
