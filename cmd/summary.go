package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/naka-gawa/itunes-app-reviews/internal/usecase"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <app-id>",
	Short: "Summarizes review ratings and outputs the result as JSON",
	Long:  `Fetches customer reviews and outputs the star rating histogram, the number of reviews and the average rating in JSON format.`,
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

		summary, err := usecase.Summarize(reviews, d.policy)
		if err != nil {
			return fmt.Errorf("failed to summarize reviews: %w", err)
		}
		jsonData, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addCollectFlags(summaryCmd)
}
