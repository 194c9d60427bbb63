package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/ajxudir/versioncheck/pkg/config"
)

// resetFlags restores every flag of the command tree to its default so that
// consecutive Execute calls in one test binary do not leak state.
func resetFlags(t *testing.T) {
	t.Helper()

	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)
	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

// useConfigDir makes config loading resolve the local config in dir instead
// of the process working directory.
func useConfigDir(t *testing.T, dir string) {
	t.Helper()

	old := loadConfigFunc
	loadConfigFunc = func(configPath, _ string) (*config.Config, error) {
		return config.LoadConfig(configPath, dir)
	}
	t.Cleanup(func() { loadConfigFunc = old })
}

// executeCommand runs the root command with args and returns what it wrote.
//
// Returns:
//   - string: Everything written to the command's stdout
//   - string: Everything written to the command's stderr
//   - error: The command error
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(t)
	t.Cleanup(func() { resetFlags(t) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--skip-build-checks"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := ExecuteTest()
	return stdout.String(), stderr.String(), err
}
