package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newVersionsCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List dataset versions recorded by previous fetches",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := openManifestStore(st.cfg)
			if err != nil {
				return err
			}
			defer mf.Close()

			fetches, err := mf.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(fetches) == 0 {
				_, err := fmt.Fprintln(out, "No fetches recorded. Run `cleva fetch` first.")
				return err
			}
			for _, f := range fetches {
				if _, err := fmt.Fprintf(out, "%s\tfiles=%d\tfetched=%s\tdir=%s\n",
					f.Version, f.Files, f.FetchedAt.Format(time.RFC3339), f.Dir); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
