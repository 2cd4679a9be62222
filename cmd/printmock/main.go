// printmock - local mock of the Slant3D printing API
package main

import (
	"context"
	"os"

	"github.com/getmockd/printmock/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}
	os.Exit(cli.Execute(context.Background(), info, os.Args[1:], os.Stderr))
}
