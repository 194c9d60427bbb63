// Package report classifies the version status of every package in an inventory.
//
// The report is built in three layers:
//   - BuildVersion classifies one version observation (a chain position or a feed entry)
//   - ResolvePackage collects all observations of one package and picks its overall state
//   - Build walks the sorted inventory, applies the newer-only filter and the limit
//
// Building a report is a pure computation over an inventory.Bundle: nothing is
// written back to the bundle and the same bundle always yields the same report.
package report

import (
	"github.com/ajxudir/versioncheck/pkg/constants"
)

// VersionRecord is one classified version observation.
//
// Fields:
//   - Version: The observed version; constants.PlaceholderUnset for an unset chain position
//   - State: The observation's state code
//   - Description: Where the observation came from (location, dev label, "unpinned", feed label)
type VersionRecord struct {
	Version     string          `json:"version"`
	State       constants.State `json:"state"`
	Description string          `json:"description"`
}

// PackageRecord is the classification of one package.
//
// Fields:
//   - State: The overall state code
//   - Versions: Observations in order: dev, chain positions, unpinned placeholder, feed entries
//   - RequiredBy: Dependent package names, nil when none were recorded
type PackageRecord struct {
	State      constants.State `json:"state"`
	Versions   []VersionRecord `json:"versions"`
	RequiredBy []string        `json:"required_by,omitempty"`
}

// Entry pairs a package name with its record.
type Entry struct {
	Name   string
	Record PackageRecord
}

// Report is an ordered mapping from package name to PackageRecord.
// Names are kept in the order they were added, which Build makes ascending.
type Report struct {
	entries []Entry
	index   map[string]int

	// MaxVersionWidth is the length in code points of the longest version
	// string emitted while building the report, counting packages that were
	// filtered out. Renderers align on it.
	MaxVersionWidth int
}

// New returns an empty report.
func New() *Report {
	return &Report{index: make(map[string]int)}
}

// Add appends a package record. Adding a name twice replaces the earlier record
// in place.
func (r *Report) Add(name string, record PackageRecord) {
	if i, ok := r.index[name]; ok {
		r.entries[i].Record = record
		return
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, Entry{Name: name, Record: record})
}

// Len returns the number of packages in the report.
func (r *Report) Len() int {
	return len(r.entries)
}

// Names returns the package names in report order.
func (r *Report) Names() []string {
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

// Get returns the record for name.
//
// Returns:
//   - PackageRecord: The record, zero value when absent
//   - bool: true if name is in the report
func (r *Report) Get(name string) (PackageRecord, bool) {
	i, ok := r.index[name]
	if !ok {
		return PackageRecord{}, false
	}
	return r.entries[i].Record, true
}

// Entries returns the entries in report order. The slice is a copy.
func (r *Report) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// CountByState returns how many packages ended up in each state.
func (r *Report) CountByState() map[constants.State]int {
	counts := make(map[constants.State]int)
	for _, e := range r.entries {
		counts[e.Record.State]++
	}
	return counts
}
