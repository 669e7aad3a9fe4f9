// Command portsim runs the simulated port scanner CLI and API server.
package main

import "github.com/anstrom/portsim/cmd/cli"

// Build information, set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildTime)
	cli.Execute()
}
