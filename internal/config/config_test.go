package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CLEVA_DATA_URL", "")
	t.Setenv("CLEVA_CACHE_DIR", "")

	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.BaseURL != DefaultBaseURL {
		t.Fatalf("base url: got %q", cfg.Data.BaseURL)
	}
	if cfg.Data.CacheDir != DefaultCacheDir {
		t.Fatalf("cache dir: got %q", cfg.Data.CacheDir)
	}
	if cfg.Data.Version != DefaultVersion {
		t.Fatalf("version: got %q", cfg.Data.Version)
	}
}

func TestLoad_File(t *testing.T) {
	t.Setenv("CLEVA_DATA_URL", "")
	t.Setenv("CLEVA_CACHE_DIR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := strings.Join([]string{
		"data:",
		"  base_url: http://localhost:9000/data",
		"  cache_dir: /tmp/cleva-cache",
		"  version: v2",
		"storage:",
		"  type: sqlite",
		"  path: /tmp/cleva.db",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.BaseURL != "http://localhost:9000/data" {
		t.Fatalf("base url: got %q", cfg.Data.BaseURL)
	}
	if cfg.Data.Version != "v2" {
		t.Fatalf("version: got %q", cfg.Data.Version)
	}
	if cfg.Storage.Type != "sqlite" || cfg.Storage.Path != "/tmp/cleva.db" {
		t.Fatalf("storage: got %+v", cfg.Storage)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLEVA_DATA_URL", "http://fixture.local/data")
	t.Setenv("CLEVA_CACHE_DIR", "/tmp/fixture-cache")

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data:\n  base_url: http://file.local/data\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.BaseURL != "http://fixture.local/data" {
		t.Fatalf("base url: got %q", cfg.Data.BaseURL)
	}
	if cfg.Data.CacheDir != "/tmp/fixture-cache" {
		t.Fatalf("cache dir: got %q", cfg.Data.CacheDir)
	}
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CLEVA_DATA_URL", "")
	t.Setenv("CLEVA_CACHE_DIR", "")
	t.Setenv("CLEVA_CORS_ORIGINS", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api:\n  cors_origins:\n    - http://one.example\n    - http://two.example\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"http://one.example", "http://two.example"}
	if len(cfg.API.CORSOrigins) != len(want) {
		t.Fatalf("origins: got %v", cfg.API.CORSOrigins)
	}
	for i := range want {
		if cfg.API.CORSOrigins[i] != want[i] {
			t.Fatalf("origins[%d]: got %q want %q", i, cfg.API.CORSOrigins[i], want[i])
		}
	}

	t.Setenv("CLEVA_CORS_ORIGINS", " http://env.example , , * ")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load with env: %v", err)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[0] != "http://env.example" || cfg.API.CORSOrigins[1] != "*" {
		t.Fatalf("env origins: got %v", cfg.API.CORSOrigins)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Fatalf("err=%q", err.Error())
	}
}
