package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadGlobalConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultDiffMaxSections, cfg.DiffConfig.MaxSections)
	assert.Equal(t, DefaultCacheTTLMinutes, cfg.CacheConfig.TTLMinutes)
	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
}

func TestLoadGlobalConfig_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
diff_config:
  max_sections: 25
  minor_wording_similarity: 0.9
scorer_config:
  enabled: true
  endpoint: "http://localhost:9090/v1/complete"
`)

	cfg, err := LoadGlobalConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DiffConfig.MaxSections)
	assert.InDelta(t, 0.9, cfg.DiffConfig.MinorWordingSimilarity, 1e-9)
	assert.True(t, cfg.ScorerConfig.Enabled)
	assert.Equal(t, "http://localhost:9090/v1/complete", cfg.ScorerConfig.Endpoint)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultDiffMaxExcerptLength, cfg.DiffConfig.MaxExcerptLength)
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	path := writeConfigFile(t, "config.json", `{"diff_config": {"max_excerpt_length": 200}}`)

	cfg, err := LoadGlobalConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 200, cfg.DiffConfig.MaxExcerptLength)
}

func TestLoadGlobalConfig_MalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", "diff_config: [broken")

	_, err := LoadGlobalConfig(path)
	assert.Error(t, err)
}

func TestLoadGlobalConfig_ValidationFailure(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
diff_config:
  minor_wording_similarity: 1.5
`)

	_, err := LoadGlobalConfig(path)
	assert.Error(t, err)
}

func TestGetConfigPath_EnvVariable(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", "")
	t.Setenv("SEMDIFF_CONFIG_PATH", path)

	assert.Equal(t, path, GetConfigPath(""))
}

func TestGetConfigPath_FlagTakesPrecedence(t *testing.T) {
	envPath := writeConfigFile(t, "env.yaml", "")
	flagPath := writeConfigFile(t, "flag.yaml", "")
	t.Setenv("SEMDIFF_CONFIG_PATH", envPath)

	assert.Equal(t, flagPath, GetConfigPath(flagPath))
}
