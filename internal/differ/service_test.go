package differ

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/models"
)

func newTestDiffer(t *testing.T) *SemanticDiffer {
	t.Helper()
	sd, err := NewSemanticDifferBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)
	return sd
}

func englishCtx() models.DocumentContext {
	return models.DocumentContext{DocumentID: "doc-1", Language: models.LanguageEnglish}
}

func TestSemanticDiffer_Compute_IdenticalContent(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(),
		"Art. 1 Payment is due in 30 days.",
		"Art. 1 Payment is due in 30 days.",
		englishCtx())

	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalChanges)
	assert.Empty(t, result.Changes)
	assert.Equal(t, "doc-1", result.DocumentID)
}

func TestSemanticDiffer_Compute_WhitespaceOnlyEdit(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(),
		"Payment is due\nin 30 days.",
		"Payment   is due in\t30 days.",
		englishCtx())

	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalChanges)
}

func TestSemanticDiffer_Compute_FormattingOnlyEdit(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(),
		"The „receiving party” keeps records.",
		"The \"receiving party\" keeps records.",
		englishCtx())

	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalChanges)
}

func TestSemanticDiffer_Compute_PureAddition(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(),
		"The agreement has one clause.",
		"The agreement has one clause. A new indemnification obligation applies.",
		englishCtx())

	require.NoError(t, err)
	require.NotEmpty(t, result.Changes)
	for _, change := range result.Changes {
		if change.ChangeType == models.ChangeTypeModified {
			// section comparator may also flag the grown section
			continue
		}
		assert.Equal(t, models.ChangeTypeAdded, change.ChangeType)
		assert.Empty(t, change.BeforeText)
		assert.NotEmpty(t, change.AfterText)
	}
}

func TestSemanticDiffer_Compute_PureRemoval(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(),
		"The agreement has one clause. The liability cap is removed entirely.",
		"The agreement has one clause.",
		englishCtx())

	require.NoError(t, err)
	require.NotEmpty(t, result.Changes)

	var sawRemoved bool
	for _, change := range result.Changes {
		if change.ChangeType == models.ChangeTypeRemoved {
			sawRemoved = true
			assert.NotEmpty(t, change.BeforeText)
			assert.Empty(t, change.AfterText)
		}
	}
	assert.True(t, sawRemoved)
}

func TestSemanticDiffer_Compute_EmptyOldSideAllAdded(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(), "", "New document content.", englishCtx())

	require.NoError(t, err)
	require.NotEmpty(t, result.Changes)
	for _, change := range result.Changes {
		assert.Equal(t, models.ChangeTypeAdded, change.ChangeType)
		assert.Empty(t, change.BeforeText)
		assert.NotEmpty(t, change.AfterText)
	}
}

func TestSemanticDiffer_Compute_EmptyNewSideAllRemoved(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(), "Old document content.", "", englishCtx())

	require.NoError(t, err)
	require.NotEmpty(t, result.Changes)
	for _, change := range result.Changes {
		assert.Equal(t, models.ChangeTypeRemoved, change.ChangeType)
		assert.NotEmpty(t, change.BeforeText)
		assert.Empty(t, change.AfterText)
	}
}

func TestSemanticDiffer_Compute_SequentialIdentifiers(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(),
		"First clause about payment terms.\n\nSecond clause about termination rights.",
		"First clause about delivery terms.\n\nSecond clause about renewal rights.",
		englishCtx())

	require.NoError(t, err)
	require.NotEmpty(t, result.Changes)
	for i, change := range result.Changes {
		assert.Equal(t, fmt.Sprintf("change-%d", i), change.ID)
	}
}

func TestSemanticDiffer_Compute_UnsupportedLanguage(t *testing.T) {
	sd := newTestDiffer(t)

	docCtx := models.DocumentContext{DocumentID: "doc-1", Language: "de"}
	result, err := sd.Compute(context.Background(), "a", "b", docCtx)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, errorwrapper.ErrUnsupportedLanguage))
}

func TestSemanticDiffer_Compute_CanceledContext(t *testing.T) {
	sd := newTestDiffer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := sd.Compute(ctx, "a", "b", englishCtx())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSemanticDiffer_Compute_NoFormattingChangesEmitted(t *testing.T) {
	sd := newTestDiffer(t)

	result, err := sd.Compute(context.Background(),
		"Art. 5 The penalty is 0.1% per day of delay.",
		"Art. 5 The penalty is 0.5% per day of delay.",
		englishCtx())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Breakdown.Formatting)
	for _, change := range result.Changes {
		assert.Greater(t, change.Significance, models.SignificanceFormatting)
	}
}

type fakeFetcher struct {
	contents map[string]string
	failOn   string
	calls    []string
}

func (f *fakeFetcher) FetchVersionContent(_ context.Context, versionID, _ string) (string, error) {
	f.calls = append(f.calls, versionID)
	if versionID == f.failOn {
		return "", errors.New("backend returned 502")
	}
	content, ok := f.contents[versionID]
	if !ok {
		return "", errorwrapper.ErrNotFound
	}
	return content, nil
}

type fakeHistory struct {
	appended []*models.SemanticDiffResult
	err      error
}

func (f *fakeHistory) AppendResult(_ context.Context, result *models.SemanticDiffResult) error {
	f.appended = append(f.appended, result)
	return f.err
}

func TestDocumentDiffService_CompareVersions_SetsVersionIdentifiers(t *testing.T) {
	fetcher := &fakeFetcher{contents: map[string]string{
		"v1": "Payment is due in 30 days.",
		"v2": "Payment is due in 90 days.",
	}}
	history := &fakeHistory{}
	service, err := NewDocumentDiffService(newTestDiffer(t), fetcher, history, zerolog.Nop())
	require.NoError(t, err)

	result, err := service.CompareVersions(context.Background(), "v1", "v2", englishCtx())

	require.NoError(t, err)
	assert.Equal(t, "v1", result.FromVersionID)
	assert.Equal(t, "v2", result.ToVersionID)
	assert.Equal(t, []string{"v1", "v2"}, fetcher.calls)
	require.Len(t, history.appended, 1)
	assert.Same(t, result, history.appended[0])
}

func TestDocumentDiffService_CompareVersions_OldFetchFailureIdentifiesVersion(t *testing.T) {
	fetcher := &fakeFetcher{failOn: "v1"}
	service, err := NewDocumentDiffService(newTestDiffer(t), fetcher, nil, zerolog.Nop())
	require.NoError(t, err)

	result, err := service.CompareVersions(context.Background(), "v1", "v2", englishCtx())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, errorwrapper.ErrContentUnavailable))
	assert.Contains(t, err.Error(), "old version 'v1'")
	// the second fetch must not be attempted
	assert.Equal(t, []string{"v1"}, fetcher.calls)
}

func TestDocumentDiffService_CompareVersions_NewFetchFailureIdentifiesVersion(t *testing.T) {
	fetcher := &fakeFetcher{
		contents: map[string]string{"v1": "some content"},
		failOn:   "v2",
	}
	service, err := NewDocumentDiffService(newTestDiffer(t), fetcher, nil, zerolog.Nop())
	require.NoError(t, err)

	result, err := service.CompareVersions(context.Background(), "v1", "v2", englishCtx())

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, errorwrapper.ErrContentUnavailable))
	assert.Contains(t, err.Error(), "new version 'v2'")
}

func TestDocumentDiffService_CompareVersions_HistoryFailureIsNonFatal(t *testing.T) {
	fetcher := &fakeFetcher{contents: map[string]string{
		"v1": "Payment is due in 30 days.",
		"v2": "Payment is due in 90 days.",
	}}
	history := &fakeHistory{err: errors.New("disk full")}
	service, err := NewDocumentDiffService(newTestDiffer(t), fetcher, history, zerolog.Nop())
	require.NoError(t, err)

	result, err := service.CompareVersions(context.Background(), "v1", "v2", englishCtx())

	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestNewDocumentDiffService_RequiresDependencies(t *testing.T) {
	_, err := NewDocumentDiffService(nil, &fakeFetcher{}, nil, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewDocumentDiffService(newTestDiffer(t), nil, nil, zerolog.Nop())
	assert.Error(t, err)
}
