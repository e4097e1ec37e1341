package scenario

import (
	"context"
	"errors"
	"fmt"
)

// Scenario binds one version/task/subtask combination to a local dataset
// cache. It carries no mutable state; every call re-reads from disk.
type Scenario struct {
	Version string
	Task    Task
	Subtask string
	Loader  *Loader
}

// Instances loads every split the task ships with and converts each record
// into an Instance. Order is preserved: splits in task order, rows in file
// order, so a split file with K lines contributes exactly K instances.
func (s *Scenario) Instances(ctx context.Context) ([]Instance, error) {
	if s == nil {
		return nil, errors.New("scenario: nil scenario")
	}
	if s.Loader == nil {
		return nil, errors.New("scenario: nil loader")
	}
	if !s.Task.Valid() {
		return nil, fmt.Errorf("scenario: unknown task %q", s.Task)
	}

	dataset, err := s.Loader.LoadDataset(ctx, s.Version, s.Task, s.Subtask)
	if err != nil {
		return nil, err
	}

	var out []Instance
	for _, split := range s.Task.Splits() {
		for i := range dataset[split] {
			inst, err := BuildInstance(s.Task, &dataset[split][i], split)
			if err != nil {
				return nil, fmt.Errorf("scenario: %s/%s row %d: %w", s.Task, split, i, err)
			}
			out = append(out, *inst)
		}
	}
	return out, nil
}

// PromptSetting resolves the task's prompt setting from the cache.
func (s *Scenario) PromptSetting() (*PromptSetting, error) {
	if s == nil || s.Loader == nil {
		return nil, errors.New("scenario: nil scenario")
	}
	return s.Loader.LoadPromptSetting(s.Version, s.Task, s.Subtask)
}
