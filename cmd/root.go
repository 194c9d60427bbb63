// Package cmd implements the command-line interface for versioncheck.
// The root command classifies every package of an inventory and prints a
// report for humans or machines.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/versioncheck/pkg/errors"
	"github.com/ajxudir/versioncheck/pkg/verbose"
	"github.com/ajxudir/versioncheck/pkg/warnings"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool
var skipBuildChecksFlag bool

var rootCmd = &cobra.Command{
	Use:   "versioncheck [inventory-file]",
	Short: "Report the version status of pinned packages",
	Long: `Classify every configured or checked-out package of an inventory and report
whether its pins are current, inherited, unpinned, or behind upstream releases.

The inventory is a YAML or JSON document; use "-" to read it from stdin.
Pin files (--pins) and a tracking file (--tracking) can replace its sections.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
		// Show build warnings (arch mismatch, dev build) at the top of every command
		if !skipBuildChecksFlag {
			if buildWarnings := GetBuildWarnings(); buildWarnings != "" {
				warnings.Warnf("%s\n", buildWarnings)
			}
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionFlag {
			printVersionOutput(cmd.OutOrStdout())
			return nil
		}
		return runReport(cmd, args)
	},
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 2: Failure
//   - 3: Configuration or input error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		code := errors.GetExitCode(err)
		errors.PrintError(os.Stderr, err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&skipBuildChecksFlag, "skip-build-checks", false, "Skip build validation warnings (dev build, arch mismatch)")

	// -v/--version is local so it only works on the root command
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")
	addReportFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}
