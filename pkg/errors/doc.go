// Package errors provides unified error types for versioncheck.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - InvalidInputError: Malformed inventory data, identifying package and field
//
// Error Checking:
//
// Use the Is* functions to check error types:
//
//	if iie, ok := errors.IsInvalidInputError(err); ok {
//	    fmt.Fprintf(os.Stderr, "bad entry for %s\n", iie.Package)
//	}
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): The report was produced
//   - ExitFailure (2): Critical error
//   - ExitConfigError (3): Configuration or inventory input error
package errors
