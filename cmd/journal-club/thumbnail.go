package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	journalclub "github.com/nayanlc19/journal-club-standalone"
	"github.com/nayanlc19/journal-club-standalone/render"
)

var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail <pdf> <output.png>",
	Short: "Render the first page as a PNG thumbnail",
	Args:  cobra.ExactArgs(2),
	RunE:  runThumbnail,
}

func init() {
	thumbnailCmd.Flags().Int("max-width", 800, "maximum thumbnail width in pixels")

	rootCmd.AddCommand(thumbnailCmd)
}

func runThumbnail(cmd *cobra.Command, args []string) error {
	maxWidth, _ := cmd.Flags().GetInt("max-width")

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("create %s: %w", args[1], err)
	}
	defer out.Close()

	ext := journalclub.Open(args[0])
	if binary := viper.GetString("rasterizer"); binary != "" {
		ext = ext.WithRasterizer(render.NewExternal(binary))
	}
	if err := ext.ThumbnailContext(cmd.Context(), out, maxWidth); err != nil {
		os.Remove(args[1])
		return err
	}
	logger.Info("thumbnail written",
		zap.String("file", args[1]),
		zap.Int("max_width", maxWidth))
	return nil
}
