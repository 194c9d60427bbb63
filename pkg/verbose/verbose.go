// Package verbose provides debug logging with documentation references.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
)

// Enable turns on verbose logging and allows debug messages to be printed.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
	}
}

// getWriter returns the current writer with proper locking for internal use.
func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// Printf prints a formatted verbose message if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Formats and prints the message with [DEBUG] prefix to the configured writer
//   - Does nothing if verbose logging is disabled
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational verbose message if enabled.
//
// Parameters:
//   - msg: The message string to print
func Info(msg string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] %s\n", msg)
	}
}

// Infof prints a formatted informational verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Infof(format string, args ...any) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] "+format+"\n", args...)
	}
}

// DocRef represents a documentation reference for a specific topic.
//
// Fields:
//   - Topic: A human-readable name for the documentation topic
//   - DocPath: The relative path to the documentation file or section
//   - Hint: A brief description of what the documentation covers
type DocRef struct {
	Topic   string
	DocPath string
	Hint    string
}

// Common documentation references.
var docRefs = map[string]DocRef{
	"config": {
		Topic:   "Configuration",
		DocPath: "README.md#configuration",
		Hint:    "Defaults for output, newer_only, limit and colors live in .versioncheck.yml",
	},
	"inventory": {
		Topic:   "Inventory Format",
		DocPath: "README.md#inventory",
		Hint:    "packages, release_feed and tracking sections of the inventory document",
	},
	"pins": {
		Topic:   "Pin Files",
		DocPath: "README.md#pin-files",
		Hint:    "Pin files inherit from each other with extends; the first file wins",
	},
	"states": {
		Topic:   "State Codes",
		DocPath: "README.md#state-codes",
		Hint:    "D X O U In I P A and how the overall package state is chosen",
	},
}

// WithDocRef prints a verbose message with a documentation reference if enabled.
//
// It performs the following operations:
//   - Checks if verbose logging is enabled
//   - Prints the message with [DEBUG] prefix
//   - If the topic is found in docRefs, appends documentation reference and hint
//
// Parameters:
//   - topic: The documentation topic key (e.g., "config", "pins", "states")
//   - message: The main message to print
func WithDocRef(topic, message string) {
	if !IsEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] %s\n", message)
	if ref, ok := docRefs[strings.ToLower(topic)]; ok {
		_, _ = fmt.Fprintf(w, "        📖 %s: %s\n", ref.Topic, ref.DocPath)
		_, _ = fmt.Fprintf(w, "        💡 %s\n", ref.Hint)
	}
}

// ConfigLoaded logs which config file was loaded if enabled.
//
// Parameters:
//   - path: The file path to the main configuration file that was loaded
//   - extended: A slice of paths to configuration files that were extended/inherited
func ConfigLoaded(path string, extended []string) {
	if !IsEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] Config loaded: %s\n", path)
	if len(extended) > 0 {
		_, _ = fmt.Fprintf(w, "        Extends: %v\n", extended)
	}
}

// InventoryLoaded logs the size of a loaded inventory if enabled.
//
// Parameters:
//   - source: Where the inventory came from (file path or "stdin")
//   - configured: Number of packages with a configuration chain
//   - tracked: Number of tracked packages
func InventoryLoaded(source string, configured, tracked int) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Inventory loaded from %s: %d configured, %d tracked\n", source, configured, tracked)
	}
}

// PackageClassified logs the overall state chosen for a package if enabled.
//
// Parameters:
//   - name: The package name
//   - state: The resolved state code
//   - observations: Number of version records that justified the state
func PackageClassified(name, state string, observations int) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Package '%s' classified %s (%d observations)\n", name, state, observations)
	}
}

// PackageFiltered logs when a package is filtered out if enabled.
//
// Parameters:
//   - name: The name of the package that was filtered
//   - reason: The reason why the package was filtered out
func PackageFiltered(name, reason string) {
	if IsEnabled() {
		_, _ = fmt.Fprintf(getWriter(), "[DEBUG] Package '%s' filtered: %s\n", name, reason)
	}
}

// truncate shortens a string to the specified maximum length.
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// List logs a bounded list of values if enabled, one per line.
//
// At most five values are printed; longer lists end with a count of the rest.
//
// Parameters:
//   - title: Heading printed before the values
//   - values: The values to print
func List(title string, values []string) {
	if !IsEnabled() {
		return
	}
	w := getWriter()
	_, _ = fmt.Fprintf(w, "[DEBUG] %s (%d)\n", title, len(values))
	shown := values
	if len(values) > 5 {
		shown = values[:3]
	}
	for _, v := range shown {
		_, _ = fmt.Fprintf(w, "        | %s\n", truncate(v, 100))
	}
	if len(shown) < len(values) {
		_, _ = fmt.Fprintf(w, "        | ... (%d more)\n", len(values)-len(shown))
	}
}
