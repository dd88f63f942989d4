// Package terminal assembles the cost-guard command line tool.
package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/cost-guard/pkg/runtime/terminal/commands"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "costguard",
		Short: "Cloud cost optimization tool",
	}

	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the config file (defaults apply when omitted)")

	// reads cfgPath at run time, after cobra has parsed the flag
	resolve := func() (*commands.Deps, error) {
		return commands.NewResolver(cfgPath)()
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(resolve, out))
	cmd.AddCommand(commands.NewSummaryCmd(resolve, out))
	cmd.AddCommand(commands.NewSeedCmd(resolve, out))
	cmd.AddCommand(commands.NewResourceCmd(resolve, out))

	return cmd
}
