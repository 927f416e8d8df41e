// Package main is the entry point for the journal-club CLI, a tool for
// pulling figures, tables and metadata out of academic PDF articles.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the journal-club CLI.
var rootCmd = &cobra.Command{
	Use:   "journal-club",
	Short: "Extract figures, tables and metadata from academic PDFs",
	Long: `journal-club locates captioned figures and tables inside academic PDF
articles and emits them as JSON records with page coordinates, caption
text and rendered image crops.

Each operation is a subcommand: figures, metadata, and thumbnail. All
results go to stdout as JSON; logs go to stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./journal-club.yaml or ~/.config/journal-club/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "also log to this file, with rotation")
	rootCmd.PersistentFlags().String("rasterizer", "", "render binary (pdftoppm or mutool; default: autodetect)")

	must(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))
	must(viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file")))
	must(viper.BindPFlag("rasterizer", rootCmd.PersistentFlags().Lookup("rasterizer")))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("journal-club")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "journal-club"))
		}
	}

	viper.SetEnvPrefix("JOURNAL_CLUB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
