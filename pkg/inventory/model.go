// Package inventory defines the raw package inventory that version reports are
// built from, and decodes it from YAML or JSON documents.
//
// An inventory bundles three independent sources:
//   - Packages: per package, the ordered chain of pinned versions (primary pin first)
//   - ReleaseFeed: per package, the ordered upstream release labels and versions
//   - Tracking: what is checked out locally, and who requires it
//
// All orderings are explicit slices; map iteration order is never relied on.
package inventory

import (
	"sort"
	"strings"

	"github.com/ajxudir/versioncheck/pkg/constants"
)

// Pin is one position in a package's configuration chain.
//
// Fields:
//   - Location: Name of the chain position (a pin file, a section, ...)
//   - Version: Pinned version; empty means the position is unset
type Pin struct {
	Location string
	Version  string
}

// Chain is the ordered configuration chain of a package. Index 0 is the primary pin.
type Chain []Pin

// Get returns the version pinned at location.
//
// Returns:
//   - string: The pinned version; empty when unset or missing
//   - bool: true if the location is part of the chain
func (c Chain) Get(location string) (string, bool) {
	for _, p := range c {
		if p.Location == location {
			return p.Version, true
		}
	}
	return "", false
}

// Primary returns the primary pin's version, or "" for an empty chain.
func (c Chain) Primary() string {
	if len(c) == 0 {
		return ""
	}
	return c[0].Version
}

// Locations returns the location keys in chain order.
func (c Chain) Locations() []string {
	out := make([]string, len(c))
	for i, p := range c {
		out[i] = p.Location
	}
	return out
}

// Release is one labelled entry of the upstream release feed.
//
// Fields:
//   - Label: Feed label (e.g., "final", "prerelease")
//   - Version: Released version; empty means absent
type Release struct {
	Label   string
	Version string
}

// IsPrerelease reports whether the label marks a pre-release channel.
func (r Release) IsPrerelease() bool {
	return strings.Contains(r.Label, constants.PrereleaseMarker)
}

// Feed is the ordered release feed of a package.
type Feed []Release

// Get returns the version published under label.
//
// Returns:
//   - string: The version; empty when absent or missing
//   - bool: true if the label is part of the feed
func (f Feed) Get(label string) (string, bool) {
	for _, r := range f {
		if r.Label == label {
			return r.Version, true
		}
	}
	return "", false
}

// Tracked is the locally checked-out state of a package.
//
// Fields:
//   - Version: The checked-out version
//   - DevLabel: Non-empty for a development checkout (e.g., "dev" or a source path)
type Tracked struct {
	Version  string
	DevLabel string
}

// IsDev reports whether the package is a development checkout.
func (t Tracked) IsDev() bool {
	return t.DevLabel != ""
}

// Tracking holds the local checkout data.
//
// Fields:
//   - Versions: Checked-out state per package name
//   - RequiredBy: Ordered dependent package names per package name
type Tracking struct {
	Versions   map[string]Tracked
	RequiredBy map[string][]string
}

// Bundle is a complete inventory snapshot. Reports only read it.
//
// Fields:
//   - Packages: Configuration chain per package name
//   - ReleaseFeed: Upstream releases per package name
//   - Tracking: Local checkout data
type Bundle struct {
	Packages    map[string]Chain
	ReleaseFeed map[string]Feed
	Tracking    Tracking
}

// NewBundle returns an empty bundle with all maps initialized.
func NewBundle() *Bundle {
	return &Bundle{
		Packages:    make(map[string]Chain),
		ReleaseFeed: make(map[string]Feed),
		Tracking: Tracking{
			Versions:   make(map[string]Tracked),
			RequiredBy: make(map[string][]string),
		},
	}
}

// Names returns the sorted union of tracked and configured package names.
//
// Returns:
//   - []string: Package names in strict ascending lexicographic order
func (b *Bundle) Names() []string {
	seen := make(map[string]struct{}, len(b.Packages)+len(b.Tracking.Versions))
	for name := range b.Packages {
		seen[name] = struct{}{}
	}
	for name := range b.Tracking.Versions {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain returns the configuration chain for name, or nil.
func (b *Bundle) Chain(name string) Chain {
	return b.Packages[name]
}

// Feed returns the release feed for name, or nil.
func (b *Bundle) Feed(name string) Feed {
	return b.ReleaseFeed[name]
}

// Tracked returns the tracked entry for name.
//
// Returns:
//   - *Tracked: The entry, or nil when the package is not tracked
func (b *Bundle) Tracked(name string) *Tracked {
	t, ok := b.Tracking.Versions[name]
	if !ok {
		return nil
	}
	return &t
}

// RequiredBy returns the dependents recorded for name, or nil.
func (b *Bundle) RequiredBy(name string) []string {
	return b.Tracking.RequiredBy[name]
}

// IsConfigured reports whether name has an entry in Packages.
func (b *Bundle) IsConfigured(name string) bool {
	_, ok := b.Packages[name]
	return ok
}

// IsTracked reports whether name has a tracked entry.
func (b *Bundle) IsTracked(name string) bool {
	_, ok := b.Tracking.Versions[name]
	return ok
}
