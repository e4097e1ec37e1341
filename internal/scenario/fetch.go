package scenario

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher downloads versioned dataset archives into the local cache and
// unpacks them. A fetch is idempotent: an archive already on disk is not
// downloaded again, and extraction overwrites in place.
type Fetcher struct {
	BaseURL string
	Root    string
	Client  *http.Client
}

// Fetch ensures <root>/data/<version> holds the extracted contents of
// {base_url}/{version}/data.zip and returns the number of files written.
// Concurrent fetches into the same cache directory are not guarded.
func (f *Fetcher) Fetch(ctx context.Context, version string) (int, error) {
	if f == nil {
		return 0, errors.New("scenario: nil fetcher")
	}
	if ctx == nil {
		return 0, errors.New("scenario: nil context")
	}
	version = strings.TrimSpace(version)
	if version == "" {
		return 0, errors.New("scenario: empty version")
	}
	base := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	if base == "" {
		return 0, errors.New("scenario: empty base URL")
	}

	dir := filepath.Join(f.Root, "data", version)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("scenario: create data dir %q: %w", dir, err)
	}

	zipPath := filepath.Join(dir, "data.zip")
	url := base + "/" + version + "/data.zip"
	if err := f.ensureDownloaded(ctx, url, zipPath); err != nil {
		return 0, err
	}

	return extractZip(zipPath, dir)
}

func (f *Fetcher) ensureDownloaded(ctx context.Context, url, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("scenario: stat %q: %w", path, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("scenario: build request %q: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("scenario: download %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("scenario: download %q: unexpected status %s", url, resp.Status)
	}

	// Write to a temp file first so a partial download never looks like a
	// completed one to a later run.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return fmt.Errorf("scenario: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("scenario: save %q: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("scenario: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("scenario: move download into place: %w", err)
	}
	return nil
}

func extractZip(zipPath, dir string) (int, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("scenario: open archive %q: %w", zipPath, err)
	}
	defer zr.Close()

	count := 0
	for _, member := range zr.File {
		target, err := sanitizeArchivePath(dir, member.Name)
		if err != nil {
			return count, err
		}

		if member.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return count, fmt.Errorf("scenario: create dir %q: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return count, fmt.Errorf("scenario: create dir for %q: %w", target, err)
		}
		if err := extractMember(member, target); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func extractMember(member *zip.File, target string) error {
	rc, err := member.Open()
	if err != nil {
		return fmt.Errorf("scenario: open archive member %q: %w", member.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("scenario: create %q: %w", target, err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("scenario: extract %q: %w", member.Name, err)
	}
	return out.Close()
}

func sanitizeArchivePath(dir, name string) (string, error) {
	target := filepath.Join(dir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("scenario: archive member %q escapes extraction dir", name)
	}
	return target, nil
}
