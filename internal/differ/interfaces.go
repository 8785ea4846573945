package differ

import (
	"context"

	"github.com/lexflow/semdiff/internal/models"
)

// SimilarityScorer scores a section pair that the heuristic rules could not
// settle. Implementations must be total: any collaborator failure degrades
// to a local score rather than an error.
type SimilarityScorer interface {
	Score(ctx context.Context, sectionA, sectionB string, docCtx models.DocumentContext) models.SectionScore
}

// ContentFetcher supplies the plain text of one document version. It may be
// backed by a cache; a fetch failure is fatal for the diff request since
// there is no meaningful diff without both texts.
type ContentFetcher interface {
	FetchVersionContent(ctx context.Context, versionID, documentID string) (string, error)
}

// HistoryStore persists computed diff results. Persistence failures never
// invalidate a computed result.
type HistoryStore interface {
	AppendResult(ctx context.Context, result *models.SemanticDiffResult) error
}
