package verbose

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// withBuffer routes verbose output into a buffer for the duration of a test.
func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetWriter(buf)
	t.Cleanup(func() {
		Disable()
		SetWriter(nil)
	})
	return buf
}

// TestEnableDisable tests the behavior of Enable and Disable functions.
//
// It verifies:
//   - Disable sets enabled state to false
//   - Enable sets enabled state to true
func TestEnableDisable(t *testing.T) {
	Disable()
	assert.False(t, IsEnabled())

	Enable()
	assert.True(t, IsEnabled())

	Disable()
	assert.False(t, IsEnabled())
}

// TestSetWriter tests the behavior of SetWriter.
//
// It verifies:
//   - Writer can be set and messages are written to it
//   - nil writer parameter is ignored
func TestSetWriter(t *testing.T) {
	buf := withBuffer(t)

	Enable()
	Printf("test message")
	assert.Contains(t, buf.String(), "[DEBUG] test message")

	SetWriter(nil)
	buf.Reset()
	Printf("another message")
	assert.Contains(t, buf.String(), "[DEBUG] another message")
}

// TestPrintf tests the behavior of Printf, Info and Infof.
//
// It verifies:
//   - No output when verbose is disabled
//   - Formatted output appears when verbose is enabled
func TestPrintf(t *testing.T) {
	buf := withBuffer(t)

	Disable()
	Printf("hidden %d", 1)
	Info("hidden")
	Infof("hidden %s", "x")
	assert.Empty(t, buf.String())

	Enable()
	Printf("value=%d", 42)
	Info("plain")
	Infof("name=%s", "pkg")
	out := buf.String()
	assert.Contains(t, out, "[DEBUG] value=42\n")
	assert.Contains(t, out, "[DEBUG] plain\n")
	assert.Contains(t, out, "[DEBUG] name=pkg\n")
}

// TestWithDocRef tests the behavior of WithDocRef.
//
// It verifies:
//   - Known topics append the documentation path and hint
//   - Unknown topics print only the message
func TestWithDocRef(t *testing.T) {
	buf := withBuffer(t)
	Enable()

	WithDocRef("PINS", "chain built")
	out := buf.String()
	assert.Contains(t, out, "[DEBUG] chain built")
	assert.Contains(t, out, "README.md#pin-files")

	buf.Reset()
	WithDocRef("nope", "just a message")
	assert.Equal(t, "[DEBUG] just a message\n", buf.String())
}

// TestDomainHelpers tests the behavior of the domain-specific log helpers.
func TestDomainHelpers(t *testing.T) {
	buf := withBuffer(t)
	Enable()

	ConfigLoaded(".versioncheck.yml", []string{"base.yml"})
	InventoryLoaded("inventory.yml", 3, 2)
	PackageClassified("plone.api", "U", 4)
	PackageFiltered("zope.interface", "up to date")

	out := buf.String()
	assert.Contains(t, out, "Config loaded: .versioncheck.yml")
	assert.Contains(t, out, "Extends: [base.yml]")
	assert.Contains(t, out, "Inventory loaded from inventory.yml: 3 configured, 2 tracked")
	assert.Contains(t, out, "Package 'plone.api' classified U (4 observations)")
	assert.Contains(t, out, "Package 'zope.interface' filtered: up to date")
}

// TestList tests the behavior of List.
//
// It verifies:
//   - Short lists are printed in full
//   - Long lists are cut to three entries plus a remainder count
func TestList(t *testing.T) {
	buf := withBuffer(t)
	Enable()

	List("names", []string{"a", "b"})
	assert.Equal(t, "[DEBUG] names (2)\n        | a\n        | b\n", buf.String())

	buf.Reset()
	List("names", []string{"a", "b", "c", "d", "e", "f"})
	out := buf.String()
	assert.Contains(t, out, "| c\n")
	assert.NotContains(t, out, "| d\n")
	assert.Contains(t, out, "... (3 more)")
}

// TestTruncate tests the behavior of truncate.
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	long := strings.Repeat("x", 20)
	assert.Equal(t, "xxxxxxx...", truncate(long, 10))
}
