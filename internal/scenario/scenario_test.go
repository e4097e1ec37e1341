package scenario

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestScenarioInstances_RoundTrip(t *testing.T) {
	root := t.TempDir()
	train := []any{
		map[string]any{"text": "训练一", "choices": []string{"负面", "正面"}, "label": []int{0}},
		map[string]any{"text": "训练二", "choices": []string{"负面", "正面"}, "label": []int{1}},
	}
	test := []any{
		map[string]any{"text": "测试一", "choices": []string{"负面", "正面"}, "label": []int{1}},
	}
	writeTaskFixture(t, root, "v1", SentimentAnalysis, "", train, test)

	s := &Scenario{
		Version: "v1",
		Task:    SentimentAnalysis,
		Loader:  &Loader{Root: root},
	}
	got, err := s.Instances(context.Background())
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("instances: got %d want 3", len(got))
	}

	// Train split first, file order within each split.
	wantInputs := []string{"训练一", "训练二", "测试一"}
	wantSplits := []Split{TrainSplit, TrainSplit, TestSplit}
	for i := range got {
		if got[i].Input != wantInputs[i] {
			t.Fatalf("instances[%d].Input: got %q want %q", i, got[i].Input, wantInputs[i])
		}
		if got[i].Split != wantSplits[i] {
			t.Fatalf("instances[%d].Split: got %q want %q", i, got[i].Split, wantSplits[i])
		}
		if len(got[i].References) != 2 {
			t.Fatalf("instances[%d]: got %d references", i, len(got[i].References))
		}
	}
	if !got[0].References[0].IsCorrect() || got[0].References[1].IsCorrect() {
		t.Fatalf("instances[0] correct tags: %+v", got[0].References)
	}
}

func TestScenarioInstances_TestOnlyTask(t *testing.T) {
	root := t.TempDir()
	// Instruction following ships without a train split; its absence must
	// not be treated as an error.
	writeTaskFixture(t, root, "v1", InstructionFollowing, "", nil,
		[]any{map[string]any{"text": "将e视为48+12。", "choices": []string{"6", "2"}, "label": []int{0}}})

	s := &Scenario{Version: "v1", Task: InstructionFollowing, Loader: &Loader{Root: root}}
	got, err := s.Instances(context.Background())
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(got) != 1 || got[0].Split != TestSplit {
		t.Fatalf("instances: got %+v", got)
	}
}

func TestScenarioInstances_MissingSplit(t *testing.T) {
	s := &Scenario{Version: "v1", Task: Translation, Subtask: "zh2en", Loader: &Loader{Root: t.TempDir()}}
	_, err := s.Instances(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err=%v, want fs.ErrNotExist", err)
	}
}

func TestScenarioInstances_BadRowNamesPosition(t *testing.T) {
	root := t.TempDir()
	writeTaskFixture(t, root, "v1", InstructionFollowing, "", nil,
		[]any{map[string]any{"text": "t", "choices": []string{"A"}, "label": []int{5}}})

	s := &Scenario{Version: "v1", Task: InstructionFollowing, Loader: &Loader{Root: root}}
	_, err := s.Instances(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestScenarioPromptSetting(t *testing.T) {
	root := t.TempDir()
	writeTaskFixture(t, root, "v1", TextClassification, "",
		[]any{}, []any{})

	s := &Scenario{Version: "v1", Task: TextClassification, Loader: &Loader{Root: root}}
	setting, err := s.PromptSetting()
	if err != nil {
		t.Fatalf("PromptSetting: %v", err)
	}
	if setting.Instructions == "" {
		t.Fatalf("empty instructions")
	}
}

func TestScenarioInstances_SubtaskLayout(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "data", "v1", "pinyin_transliteration", "pinyin2zh")
	writeJSONLFile(t, filepath.Join(dir, "train.jsonl"),
		[]any{map[string]any{"text": "pín kùn", "label": []string{"贫困"}}})
	writeJSONLFile(t, filepath.Join(dir, "test.jsonl"),
		[]any{map[string]any{"text": "qiú lèi", "label": []string{"球类"}}})

	s := &Scenario{Version: "v1", Task: PinyinTransliteration, Subtask: "pinyin2zh", Loader: &Loader{Root: root}}
	got, err := s.Instances(context.Background())
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("instances: got %d want 2", len(got))
	}
	if !got[0].References[0].IsCorrect() {
		t.Fatalf("reference not tagged correct: %+v", got[0].References)
	}
}
