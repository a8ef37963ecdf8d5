package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// NewRootCommand assembles the gf2div command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gf2div",
		Short: "Step-by-step polynomial long division over GF(2)",
		Long: `gf2div divides binary polynomials with coefficients in GF(2), the
arithmetic behind CRC checksums, and shows every XOR step along the way.

Bit strings are written most significant coefficient first:
"1011" is x^3 + x + 1.

Use gf2div-tui to watch a division animate step by step.`,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", info.Version, info.BuildTime, info.GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		NewDivideCommand(),
		NewMultiplyCommand(),
		NewCRCCommand(),
		NewHistoryCommand(),
		NewServeCommand(),
		NewConfigCommand(),
		NewVersionCommand(info),
	)

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.gf2div/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	return rootCmd
}

// NewVersionCommand prints build information.
func NewVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gf2div v%s (commit: %s, built: %s)\n",
				info.Version, info.GitCommit, info.BuildTime)
		},
	}
}
