package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/cost-guard/pkg/services/export"
)

func NewAnalyzeCmd(resolve Resolver, out io.Writer) *cobra.Command {
	var (
		mdPath  string
		csvPath string
		top     int
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run cost analysis and generate reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := resolve()
			if err != nil {
				return err
			}

			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			ctx := logger.WithContext(cmd.Context())

			fmt.Fprintln(out, "Running cost optimization analysis...")
			result, err := deps.Orchestrator.Run(ctx)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			for _, name := range result.FailedDetectors {
				fmt.Fprintf(out, "warning: detector %s failed, its findings are missing\n", name)
			}

			if len(result.Findings) == 0 {
				fmt.Fprintln(out, "No cost optimization opportunities found")
				return nil
			}

			fmt.Fprintf(out, "Found %d optimization opportunities\n", len(result.Findings))
			fmt.Fprintf(out, "Total potential savings: $%.2f/month\n\n", result.SavingsReadyUSD)

			mdFile, err := os.Create(mdPath)
			if err != nil {
				return fmt.Errorf("create markdown report: %w", err)
			}
			defer mdFile.Close()
			if err := export.NewMarkdownReporter(mdFile).Handle(result.Findings); err != nil {
				return fmt.Errorf("write markdown report: %w", err)
			}
			fmt.Fprintf(out, "Markdown report saved to %s\n", mdPath)

			csvFile, err := os.Create(csvPath)
			if err != nil {
				return fmt.Errorf("create csv report: %w", err)
			}
			defer csvFile.Close()
			if err := export.WriteCSV(csvFile, result.Findings); err != nil {
				return fmt.Errorf("write csv report: %w", err)
			}
			fmt.Fprintf(out, "CSV report saved to %s\n\n", csvPath)

			limit := top
			if limit > len(result.Findings) {
				limit = len(result.Findings)
			}
			fmt.Fprintf(out, "Top %d findings:\n", limit)
			for i, f := range result.Findings[:limit] {
				fmt.Fprintf(out, "%d. [%s] %s\n", i+1, f.Severity, f.Title)
				fmt.Fprintf(out, "   Savings: $%.2f/month\n", f.MonthlySavingsUSD)
				fmt.Fprintf(out, "   Action: %s\n", f.SuggestedAction)
				if len(f.Commands) > 0 {
					fmt.Fprintf(out, "   Command: %s\n", f.Commands[0])
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mdPath, "output", "o", "cost-analysis-report.md", "Output markdown file")
	cmd.Flags().StringVar(&csvPath, "csv", "cost-findings.csv", "Output CSV file for finance")
	cmd.Flags().IntVar(&top, "top", 10, "Number of top findings to display")

	return cmd
}
