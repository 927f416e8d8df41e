package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	journalclub "github.com/nayanlc19/journal-club-standalone"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata <pdf>",
	Short: "Print document metadata as JSON",
	Long: `Metadata reads the document information dictionary and prints title,
author, subject, keywords and page count. Absent entries are reported
as "Unknown".`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func init() {
	rootCmd.AddCommand(metadataCmd)
}

func runMetadata(cmd *cobra.Command, args []string) error {
	meta, warnings, err := journalclub.Open(args[0]).Metadata()
	if err != nil {
		return fail(err)
	}
	for _, w := range warnings {
		logger.Warn(w.Message, zap.String("code", w.Code))
	}
	return writeResult(resultEnvelope{
		Success:  true,
		Metadata: &meta,
		Warnings: warnings,
	})
}
