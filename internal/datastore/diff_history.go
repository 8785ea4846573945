package datastore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/lexflow/semdiff/internal/common/errorwrapper"
	"github.com/lexflow/semdiff/internal/config"
	"github.com/lexflow/semdiff/internal/models"
)

// ParquetChangeRecord is the flattened Parquet schema for one semantic
// change row. Result-level fields repeat on every row of that result.
type ParquetChangeRecord struct {
	DocumentID    string  `parquet:"document_id"`
	FromVersionID string  `parquet:"from_version_id,optional"`
	ToVersionID   string  `parquet:"to_version_id,optional"`
	ComputedAt    int64   `parquet:"computed_at"`
	TotalChanges  int32   `parquet:"total_changes"`
	ChangeID      string  `parquet:"change_id"`
	ChangeType    string  `parquet:"change_type"`
	Significance  string  `parquet:"significance"`
	BeforeText    string  `parquet:"before_text,optional"`
	AfterText     string  `parquet:"after_text,optional"`
	SectionPath   string  `parquet:"section_path,optional"`
	Summary       string  `parquet:"summary,optional"`
	Confidence    float64 `parquet:"confidence"`
}

// DiffHistoryStore persists computed diff results as Parquet files, one
// file per result under <base>/<document_id>/.
type DiffHistoryStore struct {
	basePath    string
	compression parquet.WriterOption
	logger      zerolog.Logger
}

// NewDiffHistoryStore creates a history store rooted at the configured base path.
func NewDiffHistoryStore(cfg config.StorageConfig, logger zerolog.Logger) (*DiffHistoryStore, error) {
	if cfg.ParquetBasePath == "" {
		return nil, errorwrapper.NewValidationError("parquet_base_path", cfg.ParquetBasePath, "storage base path cannot be empty")
	}
	return &DiffHistoryStore{
		basePath:    cfg.ParquetBasePath,
		compression: compressionOption(cfg.CompressionCodec),
		logger:      logger.With().Str("component", "DiffHistoryStore").Logger(),
	}, nil
}

// compressionOption maps the configured codec name to a writer option.
func compressionOption(codec string) parquet.WriterOption {
	switch codec {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}

// AppendResult writes one result's changes as a new Parquet file. A result
// with zero changes still produces a single marker row so the computation
// itself is recorded.
func (s *DiffHistoryStore) AppendResult(ctx context.Context, result *models.SemanticDiffResult) error {
	if result == nil {
		return errorwrapper.NewValidationError("result", result, "diff result cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(s.basePath, sanitizePathComponent(result.DocumentID))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create diff history directory")
	}

	filePath := filepath.Join(dir, fmt.Sprintf("%d.parquet", result.ComputedAt.UnixNano()))
	file, err := os.Create(filePath)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create diff history file")
	}

	records := toChangeRecords(result)
	writer := parquet.NewGenericWriter[ParquetChangeRecord](file, s.compression)

	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		_ = file.Close()
		return errorwrapper.WrapError(err, "failed to write diff history records")
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return errorwrapper.WrapError(err, "failed to close diff history writer")
	}
	if err := file.Close(); err != nil {
		return errorwrapper.WrapError(err, "failed to close diff history file")
	}

	s.logger.Debug().
		Str("document_id", result.DocumentID).
		Str("file", filePath).
		Int("records", len(records)).
		Msg("Diff result appended to history")

	return nil
}

// ReadLatestResult reconstructs the most recently written result for a
// document. Returns ErrNotFound when no history exists.
func (s *DiffHistoryStore) ReadLatestResult(ctx context.Context, documentID string) (*models.SemanticDiffResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.basePath, sanitizePathComponent(documentID))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorwrapper.ErrNotFound
		}
		return nil, errorwrapper.WrapError(err, "failed to read diff history directory")
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".parquet" {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, errorwrapper.ErrNotFound
	}
	sort.Strings(files)

	latest := filepath.Join(dir, files[len(files)-1])
	records, err := readChangeRecords(latest)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errorwrapper.ErrNotFound
	}

	return fromChangeRecords(records), nil
}

// readChangeRecords loads all rows from one history file.
func readChangeRecords(filePath string) ([]ParquetChangeRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open diff history file")
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to stat diff history file")
	}

	pqFile, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open parquet file")
	}

	reader := parquet.NewGenericReader[ParquetChangeRecord](pqFile)
	defer func() { _ = reader.Close() }()

	var records []ParquetChangeRecord
	buf := make([]ParquetChangeRecord, 64)
	for {
		n, readErr := reader.Read(buf)
		records = append(records, buf[:n]...)
		if readErr != nil {
			break
		}
	}
	return records, nil
}

// toChangeRecords flattens a result into Parquet rows.
func toChangeRecords(result *models.SemanticDiffResult) []ParquetChangeRecord {
	base := ParquetChangeRecord{
		DocumentID:    result.DocumentID,
		FromVersionID: result.FromVersionID,
		ToVersionID:   result.ToVersionID,
		ComputedAt:    result.ComputedAt.UnixMilli(),
		TotalChanges:  int32(result.TotalChanges),
	}

	if len(result.Changes) == 0 {
		return []ParquetChangeRecord{base}
	}

	records := make([]ParquetChangeRecord, 0, len(result.Changes))
	for _, change := range result.Changes {
		record := base
		record.ChangeID = change.ID
		record.ChangeType = string(change.ChangeType)
		record.Significance = change.Significance.String()
		record.BeforeText = change.BeforeText
		record.AfterText = change.AfterText
		record.SectionPath = change.SectionPath
		record.Summary = change.Summary
		record.Confidence = change.Confidence
		records = append(records, record)
	}
	return records
}

// fromChangeRecords rebuilds a result from Parquet rows.
func fromChangeRecords(records []ParquetChangeRecord) *models.SemanticDiffResult {
	first := records[0]
	result := &models.SemanticDiffResult{
		DocumentID:    first.DocumentID,
		FromVersionID: first.FromVersionID,
		ToVersionID:   first.ToVersionID,
		TotalChanges:  int(first.TotalChanges),
		ComputedAt:    time.UnixMilli(first.ComputedAt).UTC(),
	}

	for _, record := range records {
		if record.ChangeID == "" {
			continue // marker row for an empty result
		}
		result.Changes = append(result.Changes, models.SemanticChange{
			ID:           record.ChangeID,
			ChangeType:   models.ChangeType(record.ChangeType),
			Significance: significanceFromString(record.Significance),
			BeforeText:   record.BeforeText,
			AfterText:    record.AfterText,
			SectionPath:  record.SectionPath,
			Summary:      record.Summary,
			Confidence:   record.Confidence,
		})
	}

	breakdown := models.ChangeBreakdown{}
	for _, change := range result.Changes {
		switch change.Significance {
		case models.SignificanceMinorWording:
			breakdown.MinorWording++
		case models.SignificanceSubstantive:
			breakdown.Substantive++
		case models.SignificanceCritical:
			breakdown.Critical++
		}
	}
	result.Breakdown = breakdown

	return result
}

func significanceFromString(s string) models.ChangeSignificance {
	switch s {
	case "critical":
		return models.SignificanceCritical
	case "substantive":
		return models.SignificanceSubstantive
	case "minor_wording":
		return models.SignificanceMinorWording
	default:
		return models.SignificanceFormatting
	}
}

// sanitizePathComponent keeps document identifiers filesystem-safe.
func sanitizePathComponent(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	if len(out) == 0 {
		return "unknown"
	}
	return string(out)
}
