package scenario

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeJSONLFile(t *testing.T, path string, lines []any) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for i, line := range lines {
		if err := enc.Encode(line); err != nil {
			t.Fatalf("encode line %d: %v", i, err)
		}
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// buildZip returns an in-memory zip archive with the given member files.
func buildZip(t *testing.T, members map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

// writeTaskFixture lays out a minimal task directory under root with one
// train and one test split plus a prompt setting file.
func writeTaskFixture(t *testing.T, root, version string, task Task, subtask string, train, test []any) {
	t.Helper()

	dir := filepath.Join(root, "data", version, string(task))
	if subtask != "" {
		dir = filepath.Join(dir, subtask)
	}
	if train != nil {
		writeJSONLFile(t, filepath.Join(dir, "train.jsonl"), train)
	}
	if test != nil {
		writeJSONLFile(t, filepath.Join(dir, "test.jsonl"), test)
	}
	writeFile(t, filepath.Join(dir, "prompt_setting.json"),
		`[{"instructions":"以下文本属于哪个类别？","input_noun":"问题","output_noun":"答案"}]`)
}
