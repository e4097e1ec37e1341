package scenario

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads per-split JSON-lines files and prompt settings from a
// local dataset cache laid out as
// <root>/data/<version>/<task>[/<subtask>]/{train,test}.jsonl.
type Loader struct {
	Root string
}

func (l *Loader) taskDir(version string, task Task, subtask string) string {
	dir := filepath.Join(l.Root, "data", version, string(task))
	if subtask = strings.TrimSpace(subtask); subtask != "" {
		dir = filepath.Join(dir, subtask)
	}
	return dir
}

// LoadSplit reads one split file into an ordered row list. A missing
// split file surfaces as an error satisfying errors.Is(err, fs.ErrNotExist).
func (l *Loader) LoadSplit(ctx context.Context, version string, task Task, subtask string, split Split) ([]Row, error) {
	if l == nil {
		return nil, errors.New("scenario: nil loader")
	}
	if ctx == nil {
		return nil, errors.New("scenario: nil context")
	}
	if version = strings.TrimSpace(version); version == "" {
		return nil, errors.New("scenario: empty version")
	}
	if !task.Valid() {
		return nil, fmt.Errorf("scenario: unknown task %q", task)
	}

	path := filepath.Join(l.taskDir(version, task, subtask), string(split)+".jsonl")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: open split %q: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	var out []Row
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		lineNo++

		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		var row Row
		if err := json.Unmarshal(line, &row); err != nil {
			return out, fmt.Errorf("scenario: parse %q line %d: %w", path, lineNo, err)
		}
		out = append(out, row)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("scenario: read %q: %w", path, err)
	}
	return out, nil
}

// LoadDataset reads every split the task ships with, keyed by split name.
// Absence of any expected split file is an error, not an empty list.
func (l *Loader) LoadDataset(ctx context.Context, version string, task Task, subtask string) (map[Split][]Row, error) {
	out := make(map[Split][]Row, 2)
	for _, split := range task.Splits() {
		rows, err := l.LoadSplit(ctx, version, task, subtask, split)
		if err != nil {
			return nil, err
		}
		out[split] = rows
	}
	return out, nil
}

// LoadPromptSetting resolves the prompt setting for a task from the
// prompt_setting.json file next to its split files. The file holds a JSON
// array of candidate settings; only the first is used.
func (l *Loader) LoadPromptSetting(version string, task Task, subtask string) (*PromptSetting, error) {
	if l == nil {
		return nil, errors.New("scenario: nil loader")
	}
	if version = strings.TrimSpace(version); version == "" {
		return nil, errors.New("scenario: empty version")
	}
	if !task.Valid() {
		return nil, fmt.Errorf("scenario: unknown task %q", task)
	}

	path := filepath.Join(l.taskDir(version, task, subtask), "prompt_setting.json")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: missing prompt setting file %q: %w", path, err)
	}

	var settings []PromptSetting
	if err := json.Unmarshal(b, &settings); err != nil {
		return nil, fmt.Errorf("scenario: parse prompt setting %q: %w", path, err)
	}
	if len(settings) == 0 {
		return nil, fmt.Errorf("scenario: prompt setting file %q has no entries", path)
	}

	setting := settings[0]
	return &setting, nil
}
