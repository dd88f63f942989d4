package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewSeedCmd(resolve Resolver, out io.Writer) *cobra.Command {
	var seedValue int64

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the database content with generated demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := resolve()
			if err != nil {
				return err
			}

			ds, err := deps.Seeder.Seed(cmd.Context(), seedValue)
			if err != nil {
				return fmt.Errorf("seed data: %w", err)
			}

			fmt.Fprintf(out, "Seeded %s (seed %d)\n", ds.Summary(), seedValue)
			return nil
		},
	}

	cmd.Flags().Int64Var(&seedValue, "seed", 42, "Generator seed; same seed, same dataset")

	return cmd
}
