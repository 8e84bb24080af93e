package main

import (
	"fmt"
	"os"
	_ "time/tzdata" // Zone database for hosts without /usr/share/zoneinfo

	"github.com/dagucloud/timescope/internal/cmd"
	"github.com/dagucloud/timescope/internal/cmn/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   config.AppSlug,
	Short: "Relative time phrases and scoped timezone overrides",
	Long: `Timescope formats signed counts of time units as relative phrases
("3 days ago", "1 hour later", "now") and runs work under a temporary
process timezone that is always restored afterwards.
`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(cmd.Relative())
	rootCmd.AddCommand(cmd.Now())
	rootCmd.AddCommand(cmd.Exec())
	rootCmd.AddCommand(cmd.Version())

	config.Version = version
}

var version = "0.0.0"
