package config

const (
	// Diff Defaults
	DefaultDiffMaxSections       = 100
	DefaultDiffMaxExcerptLength  = 500
	DefaultDiffSimilarityMinor   = 0.8
	DefaultDiffLexicalConfidence = 0.85
	DefaultDiffSectionConfidence = 0.9
	DefaultDiffDedupPrefixLength = 100

	// Scorer Defaults
	DefaultScorerModel              = "claude-3-haiku"
	DefaultScorerMaxTokens          = 256
	DefaultScorerTemperature        = 0.0
	DefaultScorerPromptSectionChars = 500
	DefaultScorerTimeoutSecs        = 15

	// Cache Defaults
	DefaultCacheSQLitePath = "database/cache/version_content.db"
	DefaultCacheTTLMinutes = 60

	// Storage Defaults
	DefaultStorageParquetBasePath  = "database/diff_history"
	DefaultStorageCompressionCodec = "zstd"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)
