package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ajxudir/versioncheck/pkg/inventory"
)

// BundleBuilder provides a fluent API for building test inventories.
type BundleBuilder struct {
	b *inventory.Bundle
}

// NewBundle creates a new BundleBuilder with an empty inventory.
func NewBundle() *BundleBuilder {
	return &BundleBuilder{b: inventory.NewBundle()}
}

// WithPin appends a chain position to a package. The first pin added is the
// primary pin.
//
// Parameters:
//   - name: Package name
//   - location: Chain location key
//   - version: Pinned version; "" for an unset position
//
// Returns:
//   - *BundleBuilder: The builder for method chaining
func (bb *BundleBuilder) WithPin(name, location, version string) *BundleBuilder {
	bb.b.Packages[name] = append(bb.b.Packages[name], inventory.Pin{Location: location, Version: version})
	return bb
}

// WithRelease appends a release feed entry to a package.
func (bb *BundleBuilder) WithRelease(name, label, version string) *BundleBuilder {
	bb.b.ReleaseFeed[name] = append(bb.b.ReleaseFeed[name], inventory.Release{Label: label, Version: version})
	return bb
}

// WithTracked records a non-dev checkout of a package.
func (bb *BundleBuilder) WithTracked(name, version string) *BundleBuilder {
	bb.b.Tracking.Versions[name] = inventory.Tracked{Version: version}
	return bb
}

// WithDev records a development checkout of a package.
func (bb *BundleBuilder) WithDev(name, version, label string) *BundleBuilder {
	bb.b.Tracking.Versions[name] = inventory.Tracked{Version: version, DevLabel: label}
	return bb
}

// WithRequiredBy sets the dependents of a package.
func (bb *BundleBuilder) WithRequiredBy(name string, dependents ...string) *BundleBuilder {
	bb.b.Tracking.RequiredBy[name] = dependents
	return bb
}

// Build returns the constructed inventory.
func (bb *BundleBuilder) Build() *inventory.Bundle {
	return bb.b
}

// SampleInventoryYAML is an inventory document covering every package state.
const SampleInventoryYAML = `packages:
  plone.api:
    versions.cfg: "1.8"
    base.cfg: "1.9"
  Products.CMFCore:
    versions.cfg: "2.4.0"
  zope.interface:
    versions.cfg: "5.4.0"
  orphaned.pkg:
    versions.cfg: "0.1"
  collective.beta:
    versions.cfg: "1.0"
release_feed:
  Products.CMFCore:
    final: "2.5.0"
  zope.interface:
    final: "5.4.0"
  collective.beta:
    final: "1.0"
    prerelease: "2.0a1"
tracking:
  versions:
    plone.api: ["1.8", null]
    Products.CMFCore: ["2.4.0", null]
    zope.interface: ["5.4.0", null]
    collective.beta: ["1.0", null]
    my.addon: ["1.0.dev0", "src/my.addon"]
    six: ["1.16.0", null]
  required_by:
    six:
      - plone.api
      - zope.interface
`

// WriteFile writes content to name inside dir, creating parent directories.
//
// Returns:
//   - string: The full path of the written file
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
