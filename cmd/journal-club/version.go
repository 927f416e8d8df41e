package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of journal-club",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("journal-club %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
