package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/de-tools/cost-guard/pkg/models/store"
)

func NewResourceCmd(resolve Resolver, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource <resource-id>",
		Short: "Show a resource with its recent cost and utilization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := resolve()
			if err != nil {
				return err
			}

			detail, err := deps.Explorer.Describe(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("resource %q not found", args[0])
				}
				return fmt.Errorf("describe resource: %w", err)
			}

			r := detail.Resource
			fmt.Fprintf(out, "Resource %s\n", r.ResourceID)
			fmt.Fprintf(out, "  Name:   %s\n", r.Name)
			fmt.Fprintf(out, "  Type:   %s (%s)\n", r.Type, r.Cloud)
			fmt.Fprintf(out, "  State:  %s\n", r.State)
			if r.InstanceType != "" {
				fmt.Fprintf(out, "  Size:   %s\n", r.InstanceType)
			}
			if r.Region != "" {
				fmt.Fprintf(out, "  Region: %s\n", r.Region)
			}

			var total float64
			for _, c := range detail.CostHistory {
				total += c.AmountUSD
			}
			fmt.Fprintf(out, "  30d spend: $%.2f over %d days\n", total, len(detail.CostHistory))
			fmt.Fprintf(out, "  7d samples: %d\n", len(detail.Utilization))
			return nil
		},
	}

	return cmd
}
