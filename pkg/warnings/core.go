// Package warnings writes user-facing notices that do not stop a report, such
// as build warnings and inventory sections replaced by --pins or --tracking.
package warnings

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ajxudir/versioncheck/pkg/constants"
)

var (
	mu sync.RWMutex
	// warnWriter is nil until set; nil resolves to the current os.Stderr.
	warnWriter io.Writer
)

// writer returns the configured writer or the current os.Stderr.
func writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	if warnWriter == nil {
		return os.Stderr
	}
	return warnWriter
}

// Warnf writes a formatted warning to the configured warning writer.
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(writer(), format, args...)
}

// WarningWriter returns the writer warnings currently go to.
func WarningWriter() io.Writer {
	return writer()
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// Parameters:
//   - w: The new io.Writer to use; nil selects os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	warnWriter = w

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}

// SectionReplaced warns that an inventory section with entries was replaced
// by a separate file. Nothing is written when the section was empty.
//
// Parameters:
//   - section: Inventory section name (e.g., "packages", "tracking")
//   - source: Path of the file that replaced it
//   - dropped: Number of entries the section held before
func SectionReplaced(section, source string, dropped int) {
	if dropped == 0 {
		return
	}
	Warnf("%s  Inventory section %q (%d entries) replaced by %s\n", constants.IconWarn, section, dropped, source)
}
