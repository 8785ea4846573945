package differ

import (
	"fmt"
	"time"

	"github.com/lexflow/semdiff/internal/models"
)

// DiffAggregator merges detected changes into a single ordered result.
type DiffAggregator struct{}

// NewDiffAggregator creates a new aggregator.
func NewDiffAggregator() *DiffAggregator {
	return &DiffAggregator{}
}

// Aggregate concatenates lexical and section changes, in that order, assigns
// sequential identifiers, and computes the significance breakdown.
//
// The lexical-then-section ordering is part of the contract: identifiers are
// assigned in emission order and consumers may depend on them. Version
// identifiers are left empty for the caller to fill in; this unit only
// computes content diffs and does not know about version identity.
func (a *DiffAggregator) Aggregate(documentID string, lexicalChanges, sectionChanges []models.SemanticChange) *models.SemanticDiffResult {
	changes := make([]models.SemanticChange, 0, len(lexicalChanges)+len(sectionChanges))
	changes = append(changes, lexicalChanges...)
	changes = append(changes, sectionChanges...)

	breakdown := models.ChangeBreakdown{}
	for i := range changes {
		changes[i].ID = fmt.Sprintf("change-%d", i)

		switch changes[i].Significance {
		case models.SignificanceMinorWording:
			breakdown.MinorWording++
		case models.SignificanceSubstantive:
			breakdown.Substantive++
		case models.SignificanceCritical:
			breakdown.Critical++
		}
		// Formatting changes are filtered before aggregation, so the
		// breakdown's formatting count stays zero by construction.
	}

	return &models.SemanticDiffResult{
		DocumentID:   documentID,
		Changes:      changes,
		TotalChanges: len(changes),
		Breakdown:    breakdown,
		ComputedAt:   time.Now().UTC(),
	}
}
