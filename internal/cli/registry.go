// internal/cli/registry.go
package cli

import (
	"fmt"

	"sales-hunter-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func newRegistryCommand(opts *options) *cobra.Command {
	var path string
	load := func() (*registry.ActivityRegistry, error) {
		if path == "" {
			return registry.Builtin()
		}
		return registry.LoadRegistry(path)
	}

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the activity registry and check job variables against it",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "", "registry file (defaults to the embedded registry)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the registered task types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return err
			}
			type row struct {
				TaskType string `json:"taskType"`
				Status   string `json:"status"`
				Timeout  string `json:"timeout"`
				Retries  int    `json:"retries"`
			}
			rows := make([]row, 0, len(reg.Activities))
			for _, a := range reg.Activities {
				rows = append(rows, row{a.TaskType, a.ImplementationStatus, a.Timeout, a.Retries})
			}
			return writeOutput(cmd, opts, rows)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate TASK_TYPE [file]",
		Short: "Validate job variables against a task type's input schema",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return err
			}
			activity, ok := reg.Find(args[0])
			if !ok {
				return fmt.Errorf("unknown task type %q", args[0])
			}

			var variables interface{}
			if err := readInput(cmd, args[1:], &variables); err != nil {
				return err
			}
			if err := activity.ValidateInput(variables); err != nil {
				return err
			}
			return writeOutput(cmd, opts, map[string]interface{}{"taskType": activity.TaskType, "valid": true})
		},
	})
	return cmd
}
