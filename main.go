// Package main is the entry point for the versioncheck CLI application.
//
// versioncheck reports, per package, whether the pinned version is current,
// inherited, unpinned, or behind the upstream release feed.
package main

import "github.com/ajxudir/versioncheck/cmd"

// main delegates all command parsing and execution to the cmd package.
func main() {
	cmd.Execute()
}
