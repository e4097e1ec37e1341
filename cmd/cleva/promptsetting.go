package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/cleva-eval/internal/scenario"
)

type promptSettingOptions struct {
	task    string
	subtask string
	version string
}

func newPromptSettingCmd(st *cliState) *cobra.Command {
	var opts promptSettingOptions

	cmd := &cobra.Command{
		Use:   "prompt-setting",
		Short: "Show the resolved prompt setting for a task",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPromptSetting(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.task, "task", "", "task name (see `cleva tasks`)")
	cmd.Flags().StringVar(&opts.subtask, "subtask", "", "subtask name, if the task has one")
	cmd.Flags().StringVar(&opts.version, "version", "", "dataset version (defaults to config)")

	return cmd
}

func runPromptSetting(cmd *cobra.Command, st *cliState, opts *promptSettingOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("prompt-setting: missing config (internal error)")
	}

	task, err := resolveTask(opts.task)
	if err != nil {
		return err
	}

	version := strings.TrimSpace(opts.version)
	if version == "" {
		version = st.cfg.Data.Version
	}

	l := &scenario.Loader{Root: st.cfg.Data.CacheDir}
	setting, err := l.LoadPromptSetting(version, task, strings.TrimSpace(opts.subtask))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(setting)
}
