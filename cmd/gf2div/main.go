// Command gf2div performs step-by-step polynomial long division over GF(2).
//
// Usage:
//
//	gf2div <command> [flags]
//
// Commands:
//
//	divide    Divide two binary polynomials and show every step
//	multiply  Multiply two binary polynomials
//	crc       Compute or verify a CRC
//	history   List recorded divisions
//	serve     Serve divisions over HTTP
//	config    Inspect or create the config file
//	version   Print version information
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/Mr-Dark-debug/gf2div/internal/cli"
)

var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	root := cli.NewRootCommand(cli.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	})

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
