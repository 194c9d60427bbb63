package errors

import (
	"fmt"
	"io"
)

// PrintError prints an error with an actionable hint to the writer.
//
// Output format:
//
//	Error: <error message>
//	  💡 <hint if available>
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - err: The error to display; nil prints nothing
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}
