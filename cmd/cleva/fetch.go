package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/cleva-eval/internal/config"
	"github.com/stellarlinkco/cleva-eval/internal/manifest"
	"github.com/stellarlinkco/cleva-eval/internal/scenario"
)

type fetchOptions struct {
	version string
}

func newFetchCmd(st *cliState) *cobra.Command {
	var opts fetchOptions

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and extract a dataset version into the local cache",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadState(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.version, "version", "", "dataset version (defaults to config)")

	return cmd
}

func runFetch(cmd *cobra.Command, st *cliState, opts *fetchOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("fetch: missing config (internal error)")
	}

	version := strings.TrimSpace(opts.version)
	if version == "" {
		version = st.cfg.Data.Version
	}

	f := &scenario.Fetcher{
		BaseURL: st.cfg.Data.BaseURL,
		Root:    st.cfg.Data.CacheDir,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	files, err := f.Fetch(ctx, version)
	if err != nil {
		return err
	}

	dir := filepath.Join(st.cfg.Data.CacheDir, "data", version)

	mf, err := openManifestStore(st.cfg)
	if err != nil {
		return err
	}
	defer mf.Close()

	entry := &manifest.Fetch{
		Version:   version,
		URL:       strings.TrimRight(st.cfg.Data.BaseURL, "/") + "/" + version + "/data.zip",
		Dir:       dir,
		Files:     files,
		FetchedAt: time.Now().UTC(),
	}
	if err := mf.Record(cmd.Context(), entry); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Fetched version=%s files=%d dir=%s\n", version, files, dir)
	return nil
}

func openManifestStore(cfg *config.Config) (*manifest.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("manifest: missing config")
	}

	storageType := strings.ToLower(strings.TrimSpace(cfg.Storage.Type))
	if storageType == "" {
		storageType = "sqlite"
	}

	switch storageType {
	case "sqlite":
		path := strings.TrimSpace(cfg.Storage.Path)
		if path == "" {
			path = manifest.DefaultSQLitePath
		}
		return manifest.NewStore(path)
	case "memory":
		return manifest.NewStore(":memory:")
	default:
		return nil, fmt.Errorf("manifest: unsupported storage type %q", storageType)
	}
}
