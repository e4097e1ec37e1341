package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/cleva-eval/internal/scenario"
)

type instancesOptions struct {
	task    string
	subtask string
	version string
	limit   int
	output  string
}

func newInstancesCmd(st *cliState) *cobra.Command {
	var opts instancesOptions

	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Load a task's splits and print the normalized instances",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstances(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.task, "task", "", "task name (see `cleva tasks`)")
	cmd.Flags().StringVar(&opts.subtask, "subtask", "", "subtask name, if the task has one")
	cmd.Flags().StringVar(&opts.version, "version", "", "dataset version (defaults to config)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "print at most N instances (0 = all)")
	cmd.Flags().StringVar(&opts.output, "output", "text", "output format: text|json|jsonl")

	return cmd
}

func runInstances(cmd *cobra.Command, st *cliState, opts *instancesOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("instances: missing config (internal error)")
	}
	if opts.limit < 0 {
		return fmt.Errorf("instances: --limit must be >= 0 (got %d)", opts.limit)
	}

	task, err := resolveTask(opts.task)
	if err != nil {
		return err
	}

	version := strings.TrimSpace(opts.version)
	if version == "" {
		version = st.cfg.Data.Version
	}

	s := &scenario.Scenario{
		Version: version,
		Task:    task,
		Subtask: strings.TrimSpace(opts.subtask),
		Loader:  &scenario.Loader{Root: st.cfg.Data.CacheDir},
	}
	instances, err := s.Instances(cmd.Context())
	if err != nil {
		return err
	}

	total := len(instances)
	if opts.limit > 0 && opts.limit < total {
		instances = instances[:opts.limit]
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.TrimSpace(opts.output)) {
	case "", "text":
		return printInstancesText(out, instances, total)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(instances)
	case "jsonl":
		enc := json.NewEncoder(out)
		for i := range instances {
			if err := enc.Encode(&instances[i]); err != nil {
				return fmt.Errorf("instances: encode instance %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("instances: unknown output format %q (expected text|json|jsonl)", opts.output)
	}
}

func printInstancesText(w io.Writer, instances []scenario.Instance, total int) error {
	for i := range instances {
		inst := &instances[i]
		if _, err := fmt.Fprintf(w, "[%d] split=%s\n%s\n", i, inst.Split, inst.Input); err != nil {
			return err
		}
		for _, ref := range inst.References {
			marker := " "
			if ref.IsCorrect() {
				marker = "*"
			}
			if _, err := fmt.Fprintf(w, "  %s %s\n", marker, ref.Output); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "Total: %d instances\n", total)
	return err
}

func resolveTask(name string) (scenario.Task, error) {
	task := scenario.Task(strings.ToLower(strings.TrimSpace(name)))
	if task == "" {
		return "", fmt.Errorf("instances: missing --task (see `cleva tasks`)")
	}
	if !task.Valid() {
		return "", fmt.Errorf("instances: unknown task %q (see `cleva tasks`)", name)
	}
	return task, nil
}
