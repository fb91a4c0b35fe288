package main

import (
	"fmt"

	"region-tracer/internal/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of regiontool",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "regiontool version %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
