package main

import (
	"fmt"

	"github.com/aretw0/scormkit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of scormkit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "scormkit version %s\n", scormkit.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
