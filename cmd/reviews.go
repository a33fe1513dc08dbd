package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews <app-id>",
	Short: "Fetches customer reviews and outputs them as JSON",
	Long:  `Fetches the most recent customer reviews of an App Store application, merges the requested feed pages in page order, and outputs them in JSON format.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}
		reviews, err := d.collect(cmd.Context(), cmd, args[0])
		if err != nil {
			return err
		}

		jsonData, err := json.MarshalIndent(reviews, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal reviews to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reviewsCmd)
	addCollectFlags(reviewsCmd)
}
