package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewSummaryCmd(resolve Resolver, out io.Writer) *cobra.Command {
	var window string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show a quick cost summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := resolve()
			if err != nil {
				return err
			}

			s, err := deps.Summaries.Summary(cmd.Context(), window)
			if err != nil {
				return fmt.Errorf("build summary: %w", err)
			}

			fmt.Fprintf(out, "Cloud Cost Guard Summary (%s)\n", s.Window)
			fmt.Fprintln(out, "========================================")
			fmt.Fprintf(out, "Total cost:        $%.2f\n", s.KPIs.TotalCostUSD)
			fmt.Fprintf(out, "Week over week:    %+.1f%%\n", s.KPIs.WoWPercent)
			fmt.Fprintf(out, "Month over month:  %+.1f%%\n", s.KPIs.MoMPercent)
			fmt.Fprintf(out, "Savings ready:     $%.2f/month\n", s.KPIs.SavingsReadyUSD)
			fmt.Fprintf(out, "Underutilized:     %d\n", s.KPIs.UnderutilizedCount)
			fmt.Fprintf(out, "Orphans:           %d\n", s.KPIs.OrphansCount)

			if len(s.TopProducts) > 0 {
				fmt.Fprintln(out, "\nTop products:")
				for _, p := range s.TopProducts {
					fmt.Fprintf(out, "  %-20s $%10.2f  (%.1f%%)\n", p.Product, p.AmountUSD, p.PercentOfTotal)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&window, "window", "w", "30d", "Cost window: 7d, 30d or 90d")

	return cmd
}
