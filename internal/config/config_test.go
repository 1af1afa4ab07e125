package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.EnableSnippets)
	assert.True(t, cfg.EnableAutofix)
	assert.Equal(t, "autodetect", cfg.PreferredMemoryLayout)
	assert.Equal(t, "full", cfg.SemanticTokens)
	assert.Equal(t, 1<<16, cfg.MaxDetailLength)
}

func TestNamesMatchesZlsTaggedFields(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "zig_exe_path")
	assert.Contains(t, names, "enable_autofix")
	assert.Contains(t, names, "preferred_memory_layout")
	assert.NotContains(t, names, "ConfigFile")
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "project", "src")
	require.NoError(t, os.MkdirAll(subDir, 0o750))

	t.Run("no config file", func(t *testing.T) {
		assert.Empty(t, Discover(subDir))
	})

	t.Run("config in same directory", func(t *testing.T) {
		configPath := filepath.Join(subDir, ".zls.toml")
		require.NoError(t, os.WriteFile(configPath, []byte("enable_snippets = false"), 0o600))
		defer os.Remove(configPath)

		assert.Equal(t, configPath, Discover(subDir))
	})

	t.Run("config in parent directory", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "project", "zls.toml")
		require.NoError(t, os.WriteFile(configPath, []byte("enable_snippets = false"), 0o600))
		defer os.Remove(configPath)

		assert.Equal(t, configPath, Discover(subDir))
	})
}

func TestLoadAmbientAppliesFileThenEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".zls.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
warn_style = true
max_detail_length = 9000
`), 0o600))

	t.Setenv("ZLS_MAX_DETAIL_LENGTH", "12000")

	cfg, err := LoadAmbient(tmpDir)
	require.NoError(t, err)

	assert.True(t, cfg.WarnStyle)
	assert.Equal(t, 12000, cfg.MaxDetailLength, "env var should override the file value")
	assert.Equal(t, configPath, cfg.ConfigFile)
}

func TestLoadAmbientWithOverridesWinsOverFileAndEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".zls.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
max_detail_length = 9000
`), 0o600))

	t.Setenv("ZLS_MAX_DETAIL_LENGTH", "12000")

	cfg, err := LoadAmbientWithOverrides(tmpDir, map[string]any{"max_detail_length": "4000"})
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.MaxDetailLength, "--set override should win over file and env")
}

func TestLoadAmbientWithOverridesEmptyIsNoop(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadAmbientWithOverrides(tmpDir, nil)
	require.NoError(t, err)

	assert.Equal(t, Default().MaxDetailLength, cfg.MaxDetailLength)
}

func TestIsBuildFile(t *testing.T) {
	assert.True(t, IsBuildFile("project/build.zig"))
	assert.True(t, IsBuildFile("project/build.zig.zon"))
	assert.False(t, IsBuildFile("project/main.zig"))
}
