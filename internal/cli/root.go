// internal/cli/root.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type options struct {
	compact bool
}

// NewRootCommand builds the intel command tree. Every subcommand reads JSON from
// a file argument, or stdin when the argument is omitted or "-", and prints JSON.
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "intel",
		Short:         "Run the sales-intelligence scoring engines offline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&opts.compact, "compact", false, "print single-line JSON")

	root.AddCommand(
		newHealthCommand(opts),
		newWinLossCommand(opts),
		newPortfolioCommand(opts),
		newRelationshipsCommand(opts),
		newSignalsCommand(opts),
		newPriorityCommand(opts),
		newRegistryCommand(opts),
	)
	return root
}

func readInput(cmd *cobra.Command, args []string, dest interface{}) error {
	var r io.Reader = cmd.InOrStdin()
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func writeOutput(cmd *cobra.Command, opts *options, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	if !opts.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
