// Package pins builds configuration chains from pin files that inherit from
// each other through extends.
//
// A pin file looks like:
//
//	extends:
//	  - base-versions.yml
//	versions:
//	  plone.api: "1.8"
//	  zope.interface: ~
//
// The file itself has the highest precedence, followed by its extends from
// last to first, each recursively. The resulting chain of a package lists
// every file that pins it in that order, so index 0 is the pin in effect.
package pins

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/versioncheck/pkg/errors"
	"github.com/ajxudir/versioncheck/pkg/inventory"
	"github.com/ajxudir/versioncheck/pkg/verbose"
)

// DefaultMaxPinFileSize is the largest pin file that will be read (10MB).
const DefaultMaxPinFileSize int64 = 10 * 1024 * 1024

// File is one decoded pin file.
//
// Fields:
//   - Extends: Files this file inherits from, relative to its own directory
//   - Versions: Pinned version per package; nil means the position is unset
//   - AllowPathTraversal: Permit ".." in extends (honored on the root file only)
//   - AllowAbsolutePaths: Permit absolute extends (honored on the root file only)
type File struct {
	Extends            []string           `yaml:"extends,omitempty"`
	Versions           map[string]*string `yaml:"versions,omitempty"`
	AllowPathTraversal bool               `yaml:"allow_path_traversal,omitempty"`
	AllowAbsolutePaths bool               `yaml:"allow_absolute_paths,omitempty"`
}

// Result is the outcome of loading a pin file tree.
//
// Fields:
//   - Files: Location keys of every loaded file, in precedence order
//   - Packages: Configuration chain per package name
type Result struct {
	Files    []string
	Packages map[string]inventory.Chain
}

// Apply replaces the bundle's configuration chains with the loaded ones.
func (r *Result) Apply(b *inventory.Bundle) {
	b.Packages = make(map[string]inventory.Chain, len(r.Packages))
	for name, chain := range r.Packages {
		b.Packages[name] = append(inventory.Chain(nil), chain...)
	}
}

// loaded is a file together with its location key.
type loaded struct {
	location string
	file     *File
}

// loader walks one extends tree under the root file's security policy.
type loader struct {
	rootDir string
	root    *File
	maxSize int64
	stack   map[string]bool
	seen    map[string]bool
	order   []loaded
}

// Load reads the pin file at path and every file it extends.
//
// It performs the following operations:
//   - Step 1: Decodes the root file; its allow_* settings govern the whole tree
//   - Step 2: Visits the file, then its extends from last to first, recursively
//   - Step 3: Rejects cycles and, unless allowed, ".." and absolute extends
//   - Step 4: Builds one chain per package in precedence order
//
// A file reachable along several paths is only counted at its highest
// precedence position.
//
// Parameters:
//   - path: The root pin file
//
// Returns:
//   - *Result: Files and chains
//   - error: When a file cannot be read or decoded, on cycles, or on policy violations
func Load(path string) (*Result, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pin file '%s': %w", path, err)
	}

	root, err := loadFile(absPath, DefaultMaxPinFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load pin file %s: %w", path, err)
	}

	l := &loader{
		rootDir: filepath.Dir(absPath),
		root:    root,
		maxSize: DefaultMaxPinFileSize,
		stack:   make(map[string]bool),
		seen:    make(map[string]bool),
	}
	if err := l.visit(absPath, root); err != nil {
		return nil, err
	}

	result := &Result{Packages: make(map[string]inventory.Chain)}
	for _, entry := range l.order {
		result.Files = append(result.Files, entry.location)
		for _, name := range sortedNames(entry.file.Versions) {
			version := ""
			if v := entry.file.Versions[name]; v != nil {
				version = *v
			}
			result.Packages[name] = append(result.Packages[name], inventory.Pin{
				Location: entry.location,
				Version:  version,
			})
		}
	}

	verbose.ConfigLoaded(path, root.Extends)
	verbose.Printf("Pin files loaded: %d files, %d packages\n", len(result.Files), len(result.Packages))
	return result, nil
}

// visit records file and then walks its extends from last to first. A file
// already visited keeps its first, higher precedence position along with its
// ancestors, so it is neither loaded nor walked again.
func (l *loader) visit(absPath string, file *File) error {
	if l.seen[absPath] {
		return nil
	}
	l.seen[absPath] = true
	l.order = append(l.order, loaded{location: l.location(absPath), file: file})

	l.stack[absPath] = true
	defer delete(l.stack, absPath)

	baseDir := filepath.Dir(absPath)
	for i := len(file.Extends) - 1; i >= 0; i-- {
		extend := file.Extends[i]
		if err := l.validateExtendPath(extend); err != nil {
			return err
		}

		extendPath := extend
		if !filepath.IsAbs(extendPath) {
			extendPath = filepath.Join(baseDir, extend)
		}
		extendAbs, err := filepath.Abs(extendPath)
		if err != nil {
			return fmt.Errorf("failed to resolve extend path '%s': %w", extend, err)
		}
		if l.stack[extendAbs] {
			return fmt.Errorf("cyclic extends detected at %s", extendPath)
		}
		if l.seen[extendAbs] {
			continue
		}

		child, err := loadFile(extendAbs, l.maxSize)
		if err != nil {
			return fmt.Errorf("failed to load extend '%s': %w", extend, err)
		}
		verbose.Printf("Extended from %q: %d pins\n", extend, len(child.Versions))

		if err := l.visit(extendAbs, child); err != nil {
			return err
		}
	}
	return nil
}

// validateExtendPath checks an extend entry against the root file's policy.
func (l *loader) validateExtendPath(extend string) error {
	if strings.Contains(extend, "..") && !l.root.AllowPathTraversal {
		return fmt.Errorf("path traversal not allowed in extends: '%s' - "+
			"to allow, add allow_path_traversal: true to the root pin file", extend)
	}
	if filepath.IsAbs(extend) && !l.root.AllowAbsolutePaths {
		return fmt.Errorf("absolute paths not allowed in extends: '%s' - "+
			"to allow, add allow_absolute_paths: true to the root pin file", extend)
	}
	return nil
}

// location returns the location key of a file: its slash-separated path
// relative to the root file's directory, or the absolute path when it lies on
// another volume.
func (l *loader) location(absPath string) string {
	rel, err := filepath.Rel(l.rootDir, absPath)
	if err != nil {
		return filepath.ToSlash(absPath)
	}
	return filepath.ToSlash(rel)
}

// loadFile reads and strictly decodes one pin file.
func loadFile(path string, maxSize int64) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("pin file too large: %d bytes (max %d bytes)", info.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a pin file document. Unknown keys are rejected.
//
// Returns:
//   - *File: The decoded file; an empty document yields an empty file
//   - error: On invalid YAML, unknown keys or empty package names
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	for name := range f.Versions {
		if strings.TrimSpace(name) == "" {
			return nil, errors.NewInvalidInputError("", "versions", "package name must not be empty")
		}
	}
	return &f, nil
}

// sortedNames returns the package names of a versions section in ascending order.
func sortedNames(m map[string]*string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
