package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version variables set at build time (e.g., with -ldflags).
var (
	version = "0.0.0"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "show srsprofile version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("version: %s\n", version)
		fmt.Printf(" commit: %s\n", commit)
		fmt.Printf("   date: %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
