package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/steveyegge/speclint/internal/types"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "speclint %s (result schema %s)\n", version, types.SchemaVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
