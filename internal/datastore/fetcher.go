package datastore

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/differ"
)

// CachingFetcher fronts a content fetcher with the SQLite cache. Cache
// failures degrade to the inner fetcher; fetch failures propagate.
type CachingFetcher struct {
	cache  *ContentCache
	inner  differ.ContentFetcher
	logger zerolog.Logger
}

// NewCachingFetcher composes the cache in front of a fetcher.
func NewCachingFetcher(cache *ContentCache, inner differ.ContentFetcher, logger zerolog.Logger) (*CachingFetcher, error) {
	if cache == nil {
		return nil, errorwrapper.NewValidationError("cache", cache, "content cache cannot be nil")
	}
	if inner == nil {
		return nil, errorwrapper.NewValidationError("inner", inner, "inner fetcher cannot be nil")
	}
	return &CachingFetcher{
		cache:  cache,
		inner:  inner,
		logger: logger.With().Str("component", "CachingFetcher").Logger(),
	}, nil
}

// FetchVersionContent serves from the cache when fresh, otherwise delegates
// and populates the cache with the fetched body.
func (f *CachingFetcher) FetchVersionContent(ctx context.Context, versionID, documentID string) (string, error) {
	content, found, err := f.cache.Get(ctx, versionID, documentID)
	if err != nil {
		f.logger.Warn().Err(err).
			Str("version_id", versionID).
			Msg("Cache lookup failed, fetching directly")
	} else if found {
		return content, nil
	}

	content, err = f.inner.FetchVersionContent(ctx, versionID, documentID)
	if err != nil {
		return "", err
	}

	if err := f.cache.Put(ctx, versionID, documentID, content); err != nil {
		f.logger.Warn().Err(err).
			Str("version_id", versionID).
			Msg("Failed to populate content cache")
	}

	return content, nil
}
