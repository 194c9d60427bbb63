package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/versioncheck/pkg/errors"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoadConfig tests the behavior of LoadConfig with various scenarios.
//
// It verifies:
//   - Built-in defaults apply when no file exists
//   - The local .versioncheck.yml is picked up
//   - An explicit path wins over the local file
//   - Nonexistent config files return an error
//   - Relative paths resolve against the config file's directory
func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "human", cfg.GetOutput())
		assert.Equal(t, "auto", cfg.GetColor())
		assert.False(t, cfg.IsNewerOnly())
		assert.False(t, cfg.IsShowRequiredBy())
		assert.Equal(t, 0, cfg.GetLimit())
		assert.True(t, cfg.IsRootConfig())
	})

	t.Run("local file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, LocalConfigName, "output: json\nnewer_only: true\nlimit: 5\ninventory: data/inv.yml\n")

		cfg, err := LoadConfig("", dir)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.GetOutput())
		assert.Equal(t, "auto", cfg.GetColor())
		assert.True(t, cfg.IsNewerOnly())
		assert.Equal(t, 5, cfg.GetLimit())
		assert.Equal(t, filepath.Join(dir, "data", "inv.yml"), cfg.Inventory)
		assert.Equal(t, dir, cfg.WorkingDir)
	})

	t.Run("explicit path", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, LocalConfigName, "output: json\n")
		custom := writeConfig(t, dir, "other.yml", "show_required_by: true\n")

		cfg, err := LoadConfig(custom, dir)
		require.NoError(t, err)
		assert.Equal(t, "human", cfg.GetOutput())
		assert.True(t, cfg.IsShowRequiredBy())
	})

	t.Run("nonexistent config", func(t *testing.T) {
		cfg, err := LoadConfig("/nonexistent/config.yml", t.TempDir())
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("unknown field", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "c.yml", "outptu: json\n")
		_, err := LoadConfig(path, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid YAML")
	})

	t.Run("invalid values", func(t *testing.T) {
		dir := t.TempDir()
		path := writeConfig(t, dir, "c.yml", "output: xml\ncolor: rainbow\nlimit: -1\n")
		_, err := LoadConfig(path, dir)
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "output")
		assert.Contains(t, err.Error(), "color")
		assert.Contains(t, err.Error(), "limit")
	})
}

// TestLoadConfig_Extends tests config inheritance.
//
// It verifies:
//   - Later extends override earlier ones and the file overrides both
//   - Explicit false and 0 override inherited values
//   - Paths in extended files resolve against their own directory
//   - Cycles and disallowed paths fail
func TestLoadConfig_Extends(t *testing.T) {
	t.Run("merge order", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "shared/a.yml", "output: json\nnewer_only: true\nlimit: 3\npins: versions.yml\n")
		writeConfig(t, dir, "shared/b.yml", "color: never\nlimit: 7\n")
		root := writeConfig(t, dir, "root.yml", "extends: [shared/a.yml, shared/b.yml]\nnewer_only: false\n")

		cfg, err := LoadConfig(root, dir)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.GetOutput())
		assert.Equal(t, "never", cfg.GetColor())
		assert.Equal(t, 7, cfg.GetLimit())
		assert.False(t, cfg.IsNewerOnly())
		assert.Equal(t, filepath.Join(dir, "shared", "versions.yml"), cfg.Pins)
		assert.Empty(t, cfg.Extends)
	})

	t.Run("cycle", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "a.yml", "extends: [b.yml]\n")
		root := writeConfig(t, dir, "b.yml", "extends: [a.yml]\n")
		_, err := LoadConfig(root, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cyclic extends")
	})

	t.Run("path traversal blocked", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "base.yml", "output: json\n")
		root := writeConfig(t, dir, "sub/root.yml", "extends: [../base.yml]\n")
		_, err := LoadConfig(root, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not allowed in extends")
	})

	t.Run("path traversal allowed by root", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "base.yml", "output: json\n")
		root := writeConfig(t, dir, "sub/root.yml", "security:\n  allow_path_traversal: true\nextends: [../base.yml]\n")
		cfg, err := LoadConfig(root, dir)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.GetOutput())
		assert.True(t, cfg.AllowsPathTraversal())
	})

	t.Run("extended security ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "base.yml", "security:\n  allow_absolute_paths: true\n")
		root := writeConfig(t, dir, "root.yml", "extends: [base.yml]\n")
		cfg, err := LoadConfig(root, dir)
		require.NoError(t, err)
		assert.False(t, cfg.AllowsAbsolutePaths())
	})

	t.Run("absolute path blocked", func(t *testing.T) {
		dir := t.TempDir()
		base := writeConfig(t, dir, "base.yml", "output: json\n")
		root := writeConfig(t, dir, "root.yml", "extends: ["+base+"]\n")
		_, err := LoadConfig(root, dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absolute paths not allowed")
	})
}

// TestLoadConfigFileWithLimit tests the size limit.
func TestLoadConfigFileWithLimit(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "c.yml", "output: json\n")

	_, err := loadConfigFileWithLimit(path, 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")

	cfg, err := loadConfigFileWithLimit(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
}

// TestValidateFile tests the behavior of ValidateFile.
func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	good := writeConfig(t, dir, "good.yml", GetTemplateConfig())
	bad := writeConfig(t, dir, "bad.yml", "color: sometimes\n")

	assert.NoError(t, ValidateFile(good))

	err := ValidateFile(bad)
	require.Error(t, err)
	assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))

	err = ValidateFile(filepath.Join(dir, "missing.yml"))
	assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
}

// TestDefaults tests the embedded configuration documents.
func TestDefaults(t *testing.T) {
	cfg := loadDefaultConfig()
	assert.Equal(t, "human", cfg.Output)
	require.NotNil(t, cfg.Limit)
	assert.Equal(t, 0, *cfg.Limit)
	assert.NoError(t, Validate(cfg))

	assert.Contains(t, GetDefaultConfig(), "output: human")
	assert.Contains(t, GetTemplateConfig(), "show_required_by")

	original := defaultConfigYAML
	defaultConfigYAML = "invalid: ["
	defer func() { defaultConfigYAML = original }()
	assert.Equal(t, &Config{}, loadDefaultConfig())
}

// TestMergeConfigs tests the behavior of mergeConfigs.
func TestMergeConfigs(t *testing.T) {
	yes := true
	base := &Config{Output: "json", NewerOnly: &yes, Security: &SecurityCfg{AllowAbsolutePaths: true}}
	custom := &Config{Color: "never"}

	merged := mergeConfigs(base, custom)
	assert.Equal(t, "json", merged.Output)
	assert.Equal(t, "never", merged.Color)
	assert.True(t, merged.IsNewerOnly())
	assert.True(t, merged.AllowsAbsolutePaths())

	assert.Same(t, base, mergeConfigs(base, nil))
}
