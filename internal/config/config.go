package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

const (
	// DefaultBaseURL is the published location of the CLEVA dataset archives.
	DefaultBaseURL = "http://emnlp.clevaplat.com:8001/data"
	// DefaultCacheDir mirrors the layout the harness expects scenarios under.
	DefaultCacheDir = "benchmark_output/scenarios/cleva"
	// DefaultVersion is the dataset version fetched when none is given.
	DefaultVersion = "v1"
)

type Config struct {
	Data    DataConfig    `yaml:"data"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
}

type APIConfig struct {
	// CORSOrigins lists browser origins allowed to read the API. A "*"
	// entry allows any origin; an empty list disables CORS headers.
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

type DataConfig struct {
	BaseURL  string `yaml:"base_url,omitempty"`
	CacheDir string `yaml:"cache_dir,omitempty"`
	Version  string `yaml:"version,omitempty"`
}

type StorageConfig struct {
	Type string `yaml:"type,omitempty"` // "sqlite" or "memory"
	Path string `yaml:"path,omitempty"` // SQLite file path
}

// Load reads the YAML config at path and applies defaults and environment
// overrides. A missing file at the default path yields the built-in
// defaults so the CLI works from a clean checkout; a missing file at an
// explicitly chosen path is an error.
func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}

	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) || path != DefaultPath {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	} else if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	if strings.TrimSpace(cfg.Data.BaseURL) == "" {
		cfg.Data.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Data.CacheDir) == "" {
		cfg.Data.CacheDir = DefaultCacheDir
	}
	if strings.TrimSpace(cfg.Data.Version) == "" {
		cfg.Data.Version = DefaultVersion
	}

	if v := strings.TrimSpace(os.Getenv("CLEVA_DATA_URL")); v != "" {
		cfg.Data.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("CLEVA_CACHE_DIR")); v != "" {
		cfg.Data.CacheDir = v
	}
	if v := strings.TrimSpace(os.Getenv("CLEVA_CORS_ORIGINS")); v != "" {
		cfg.API.CORSOrigins = splitList(v)
	}

	return &cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
