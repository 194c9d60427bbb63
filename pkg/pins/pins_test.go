package pins

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/versioncheck/pkg/errors"
	"github.com/ajxudir/versioncheck/pkg/inventory"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_Precedence tests the chain order produced by extends.
//
// It verifies:
//   - The root file comes first
//   - Later extends take precedence over earlier ones
//   - Nested extends follow their parent
//   - Null pins become unset positions
func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "core.yml", "versions:\n  plone.api: \"1.5\"\n  six: \"1.15\"\n")
	writeFile(t, dir, "base.yml", "extends: [core.yml]\nversions:\n  plone.api: \"1.6\"\n")
	writeFile(t, dir, "extra/addons.yml", "versions:\n  plone.api: \"1.9\"\n  collective.x: ~\n")
	root := writeFile(t, dir, "versions.yml", "extends:\n  - base.yml\n  - extra/addons.yml\nversions:\n  plone.api: \"1.8\"\n")

	result, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"versions.yml", "extra/addons.yml", "base.yml", "core.yml"}, result.Files)
	assert.Equal(t, inventory.Chain{
		{Location: "versions.yml", Version: "1.8"},
		{Location: "extra/addons.yml", Version: "1.9"},
		{Location: "base.yml", Version: "1.6"},
		{Location: "core.yml", Version: "1.5"},
	}, result.Packages["plone.api"])
	assert.Equal(t, inventory.Chain{{Location: "core.yml", Version: "1.15"}}, result.Packages["six"])
	assert.Equal(t, inventory.Chain{{Location: "extra/addons.yml", Version: ""}}, result.Packages["collective.x"])
}

// TestLoad_Diamond tests that a file reached twice is counted once, at its
// highest precedence position.
func TestLoad_Diamond(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.yml", "versions:\n  six: \"1.0\"\n")
	writeFile(t, dir, "a.yml", "extends: [shared.yml]\n")
	writeFile(t, dir, "b.yml", "extends: [shared.yml]\n")
	root := writeFile(t, dir, "root.yml", "extends: [a.yml, b.yml]\n")

	result, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"root.yml", "b.yml", "shared.yml", "a.yml"}, result.Files)
	assert.Len(t, result.Packages["six"], 1)
}

// TestLoad_LayeredDiamonds tests extends graphs where every layer reaches the
// next through two files.
//
// It verifies:
//   - Each file appears once, at its first visit
//   - Shared ancestors are not walked again, so deep graphs load promptly
func TestLoad_LayeredDiamonds(t *testing.T) {
	tests := []struct {
		name   string
		layers int
	}{
		{name: "single layer", layers: 1},
		{name: "two layers", layers: 2},
		{name: "deep graph", layers: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for i := 0; i < tt.layers; i++ {
				extends := ""
				if i+1 < tt.layers {
					extends = fmt.Sprintf("extends: [l%da.yml, l%db.yml]\n", i+1, i+1)
				}
				for _, side := range []string{"a", "b"} {
					name := fmt.Sprintf("l%d%s.yml", i, side)
					writeFile(t, dir, name, extends+"versions:\n  six: \""+name+"\"\n")
				}
			}
			root := writeFile(t, dir, "root.yml", "extends: [l0a.yml, l0b.yml]\n")

			result, err := Load(root)
			require.NoError(t, err)

			want := []string{"root.yml"}
			for i := 0; i < tt.layers; i++ {
				want = append(want, fmt.Sprintf("l%db.yml", i))
			}
			for i := tt.layers - 1; i >= 0; i-- {
				want = append(want, fmt.Sprintf("l%da.yml", i))
			}
			assert.Equal(t, want, result.Files)
			require.Len(t, result.Packages["six"], 2*tt.layers)
			for i, pin := range result.Packages["six"] {
				assert.Equal(t, want[i+1], pin.Location)
				assert.Equal(t, want[i+1], pin.Version)
			}
		})
	}
}

// TestLoad_Errors tests the failure modes of Load.
//
// It verifies:
//   - Cycles are detected
//   - Path traversal and absolute paths are refused by default
//   - Missing extends, unknown keys and invalid YAML fail
func TestLoad_Errors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yml", "extends: [b.yml]\n")
		writeFile(t, dir, "b.yml", "extends: [a.yml]\n")
		_, err := Load(filepath.Join(dir, "a.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cyclic extends")
	})

	t.Run("self reference", func(t *testing.T) {
		dir := t.TempDir()
		root := writeFile(t, dir, "a.yml", "extends: [a.yml]\n")
		_, err := Load(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cyclic extends")
	})

	t.Run("path traversal", func(t *testing.T) {
		dir := t.TempDir()
		root := writeFile(t, dir, "sub/root.yml", "extends: [../base.yml]\n")
		writeFile(t, dir, "base.yml", "versions: {six: \"1.0\"}\n")
		_, err := Load(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not allowed in extends")
	})

	t.Run("absolute path", func(t *testing.T) {
		dir := t.TempDir()
		base := writeFile(t, dir, "base.yml", "versions: {six: \"1.0\"}\n")
		root := writeFile(t, dir, "root.yml", "extends: ["+base+"]\n")
		_, err := Load(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "absolute paths not allowed")
	})

	t.Run("missing extend", func(t *testing.T) {
		dir := t.TempDir()
		root := writeFile(t, dir, "root.yml", "extends: [nowhere.yml]\n")
		_, err := Load(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nowhere.yml")
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "none.yml"))
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		dir := t.TempDir()
		root := writeFile(t, dir, "root.yml", "version:\n  six: \"1.0\"\n")
		_, err := Load(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid yaml")
	})

	t.Run("too large", func(t *testing.T) {
		dir := t.TempDir()
		root := writeFile(t, dir, "root.yml", "# "+strings.Repeat("x", int(DefaultMaxPinFileSize))+"\n")
		_, err := Load(root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "too large")
	})
}

// TestLoad_AllowedPaths tests that the root file can open up the extends policy.
func TestLoad_AllowedPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yml", "versions: {six: \"1.0\"}\n")
	root := writeFile(t, dir, "sub/root.yml", "allow_path_traversal: true\nextends: [../base.yml]\nversions: {six: \"1.1\"}\n")

	result, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, inventory.Chain{
		{Location: "root.yml", Version: "1.1"},
		{Location: "../base.yml", Version: "1.0"},
	}, result.Packages["six"])
}

// TestParse tests the behavior of Parse.
func TestParse(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Versions)

	f, err = Parse([]byte("versions:\n  plone.api: 1.10\n"))
	require.NoError(t, err)
	require.NotNil(t, f.Versions["plone.api"])
	assert.Equal(t, "1.10", *f.Versions["plone.api"])

	_, err = Parse([]byte("versions:\n  \"\": \"1.0\"\n"))
	assert.True(t, errors.IsInvalidInput(err))

	_, err = Parse([]byte("versions: [a, b"))
	assert.Error(t, err)
}

// TestResult_Apply tests that Apply replaces the bundle's chains.
func TestResult_Apply(t *testing.T) {
	b := inventory.NewBundle()
	b.Packages["old"] = inventory.Chain{{Location: "x", Version: "1"}}

	r := &Result{Packages: map[string]inventory.Chain{"six": {{Location: "v.yml", Version: "1.0"}}}}
	r.Apply(b)

	assert.False(t, b.IsConfigured("old"))
	assert.Equal(t, "1.0", b.Chain("six").Primary())
}
