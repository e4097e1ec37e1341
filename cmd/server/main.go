package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stellarlinkco/cleva-eval/api"
	"github.com/stellarlinkco/cleva-eval/internal/config"
	"github.com/stellarlinkco/cleva-eval/internal/manifest"
	"github.com/stellarlinkco/cleva-eval/internal/scenario"
)

var (
	osExit                 = os.Exit
	stderrWriter io.Writer = os.Stderr

	loadConfig = config.Load
	newServer  = api.NewServer
	runServer  = (*api.Server).Run

	manifestNewStore = manifest.NewStore
)

func main() {
	osExit(runMain(os.Args[1:]))
}

func runMain(args []string) int {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(stderrWriter)

	var addr string
	var configPath string
	fs.StringVar(&addr, "addr", ":8080", "listen address")
	fs.StringVar(&configPath, "config", config.DefaultPath, "path to config file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}

	mf, err := openManifestStore(cfg)
	if err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}
	defer func() { _ = mf.Close() }()

	loader := &scenario.Loader{Root: cfg.Data.CacheDir}

	srv, err := newServer(cfg, loader, mf)
	if err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}
	if err := runServer(srv, addr); err != nil {
		fmt.Fprintln(stderrWriter, err)
		return 1
	}

	return 0
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
		return manifestNewStore(path)
	case "memory":
		return manifestNewStore(":memory:")
	default:
		return nil, fmt.Errorf("manifest: unsupported storage type %q", storageType)
	}
}
