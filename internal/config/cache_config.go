package config

// CacheConfig defines configuration for the version-content cache
type CacheConfig struct {
	// SQLitePath is the on-disk location of the cache database.
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty" validate:"omitempty,sqlitepath"`
	// TTLMinutes is how long a cached version body stays fresh.
	TTLMinutes int `json:"ttl_minutes,omitempty" yaml:"ttl_minutes,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultCacheConfig creates default cache configuration
func NewDefaultCacheConfig() CacheConfig {
	return CacheConfig{
		SQLitePath: DefaultCacheSQLitePath,
		TTLMinutes: DefaultCacheTTLMinutes,
	}
}
