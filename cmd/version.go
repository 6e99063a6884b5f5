package cmd

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the resub version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Println("resub " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
