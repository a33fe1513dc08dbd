// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "itunes-reviews",
	Short: "A CLI tool to collect and report App Store customer reviews.",
	Long: `itunes-reviews collects customer reviews of an App Store application from the
public iTunes RSS feed, merges the requested pages, and prints them as JSON,
as a rating summary, or as a text report rendered from a customizable template.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("metrics-textfile", "", "Write fetch metrics to this file in the Prometheus text format")
	rootCmd.PersistentFlags().String("env-file", ".env", "Load environment variables from this file if it exists")
}
