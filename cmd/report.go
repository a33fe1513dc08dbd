package cmd

import (
	"fmt"
	"os"

	"github.com/naka-gawa/itunes-app-reviews/internal/usecase"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <app-id>",
	Short: "Renders customer reviews as a text report",
	Long: `Fetches customer reviews and renders a text report: a header with the rating
summary followed by one block per review. Templates may use placeholders such as
{title}, {day}, {separator}, {icon.s1}..{icon.s5}, {summary.total}, {summary.average},
{summary.rating.s1}..{summary.rating.s5} in the header, and {entry.title},
{entry.author}, {entry.rating.icon}, {entry.rating.number}, {entry.comment},
{entry.updated}, {entry.version} in each entry. Unknown placeholders are removed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDeps(cmd)
		if err != nil {
			return err
		}

		opts := usecase.ReportOptions{Policy: d.policy}
		opts.Separator, _ = cmd.Flags().GetString("separator")
		opts.Sepalator, _ = cmd.Flags().GetString("sepalator")
		opts.Day, _ = cmd.Flags().GetString("day")
		tmpl, err := loadTemplate(cmd)
		if err != nil {
			return err
		}
		opts.Template = tmpl

		reviews, err := d.collect(cmd.Context(), cmd, args[0])
		if err != nil {
			return err
		}

		text, err := usecase.NewReporter(usecase.DefaultReportDefaults()).Report(reviews, opts)
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

// loadTemplate reads the template files given on the command line. A file that is not
// given keeps the built-in template for that part.
func loadTemplate(cmd *cobra.Command) (*usecase.Template, error) {
	headerPath, _ := cmd.Flags().GetString("header-template")
	entryPath, _ := cmd.Flags().GetString("entry-template")
	if headerPath == "" && entryPath == "" {
		return nil, nil
	}

	tmpl := usecase.DefaultReportDefaults().Template
	if headerPath != "" {
		b, err := os.ReadFile(headerPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read header template: %w", err)
		}
		tmpl.Header = string(b)
	}
	if entryPath != "" {
		b, err := os.ReadFile(entryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry template: %w", err)
		}
		tmpl.Entry = string(b)
	}
	return &tmpl, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
	addCollectFlags(reportCmd)
	reportCmd.Flags().String("separator", "", `Line separator placed by {separator} (default "\n")`)
	reportCmd.Flags().String("sepalator", "", "Deprecated spelling of --separator")
	reportCmd.Flags().MarkDeprecated("sepalator", "use --separator instead")
	reportCmd.Flags().String("header-template", "", "File containing the header template")
	reportCmd.Flags().String("entry-template", "", "File containing the per-review template")
}
