package differ

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/models"
)

// DocumentDiffService resolves version identifiers to content through the
// fetch collaborator and runs the semantic diff between them.
type DocumentDiffService struct {
	differ  *SemanticDiffer
	fetcher ContentFetcher
	history HistoryStore
	logger  zerolog.Logger
}

// NewDocumentDiffService creates a version-aware diff service. The history
// store is optional; when nil, results are not persisted.
func NewDocumentDiffService(differ *SemanticDiffer, fetcher ContentFetcher, history HistoryStore, logger zerolog.Logger) (*DocumentDiffService, error) {
	if differ == nil {
		return nil, errorwrapper.NewValidationError("differ", differ, "semantic differ cannot be nil")
	}
	if fetcher == nil {
		return nil, errorwrapper.NewValidationError("fetcher", fetcher, "content fetcher cannot be nil")
	}
	return &DocumentDiffService{
		differ:  differ,
		fetcher: fetcher,
		history: history,
		logger:  logger.With().Str("component", "DocumentDiffService").Logger(),
	}, nil
}

// CompareVersions fetches both versions' content and computes their semantic
// diff. A fetch failure on either side is terminal: the error identifies
// which version could not be obtained, and no partial result is returned.
func (s *DocumentDiffService) CompareVersions(ctx context.Context, fromVersionID, toVersionID string, docCtx models.DocumentContext) (*models.SemanticDiffResult, error) {
	oldContent, err := s.fetcher.FetchVersionContent(ctx, fromVersionID, docCtx.DocumentID)
	if err != nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrContentUnavailable,
			"failed to fetch old version '"+fromVersionID+"': "+err.Error())
	}

	newContent, err := s.fetcher.FetchVersionContent(ctx, toVersionID, docCtx.DocumentID)
	if err != nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrContentUnavailable,
			"failed to fetch new version '"+toVersionID+"': "+err.Error())
	}

	result, err := s.differ.Compute(ctx, oldContent, newContent, docCtx)
	if err != nil {
		return nil, err
	}

	result.FromVersionID = fromVersionID
	result.ToVersionID = toVersionID

	if s.history != nil {
		if err := s.history.AppendResult(ctx, result); err != nil {
			// Persistence never invalidates a computed result
			s.logger.Warn().Err(err).
				Str("document_id", docCtx.DocumentID).
				Msg("Failed to append diff result to history store")
		}
	}

	return result, nil
}
