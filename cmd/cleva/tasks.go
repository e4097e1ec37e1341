package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/cleva-eval/internal/scenario"
)

func newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List recognized task names and their splits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, task := range scenario.Tasks() {
				splits := task.Splits()
				names := make([]string, 0, len(splits))
				for _, s := range splits {
					names = append(names, string(s))
				}
				if _, err := fmt.Fprintf(out, "%s (%s)\n", task, strings.Join(names, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
