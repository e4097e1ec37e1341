package scenario

import "sort"

// Split names a dataset partition.
type Split string

const (
	TrainSplit Split = "train"
	TestSplit  Split = "test"
)

// CorrectTag marks a reference as an accepted answer.
const CorrectTag = "correct"

// Reference is one scored answer candidate for an instance.
type Reference struct {
	Output string   `json:"output"`
	Tags   []string `json:"tags,omitempty"`
}

// IsCorrect reports whether the reference carries the correct tag.
func (r Reference) IsCorrect() bool {
	for _, tag := range r.Tags {
		if tag == CorrectTag {
			return true
		}
	}
	return false
}

// Instance is one normalized evaluation unit: rendered input text plus
// its scored references.
type Instance struct {
	Input      string      `json:"input"`
	References []Reference `json:"references"`
	Split      Split       `json:"split"`
}

// PromptSetting controls how instructions and input/output labels are
// rendered around an instance. Field names match the on-disk
// prompt_setting.json schema.
type PromptSetting struct {
	Instructions           string `json:"instructions"`
	InputNoun              string `json:"input_noun,omitempty"`
	NewlineAfterInputNoun  bool   `json:"newline_after_input_noun,omitempty"`
	OutputNoun             string `json:"output_noun"`
	NewlineAfterOutputNoun bool   `json:"newline_after_output_noun,omitempty"`
}

// Task identifies one CLEVA evaluation task.
type Task string

const (
	TextClassification            Task = "text_classification"
	OpinionMining                 Task = "opinion_mining"
	PinyinTransliteration         Task = "pinyin_transliteration"
	ClassicalChineseUnderstanding Task = "classical_chinese_understanding"
	SentimentAnalysis             Task = "sentiment_analysis"
	InstructionFollowing          Task = "instruction_following"
	FactChecking                  Task = "fact_checking"
	Translation                   Task = "translation"
	IntentUnderstanding           Task = "intent_understanding"
	CoreferenceResolution         Task = "coreference_resolution"
	ReadingComprehension          Task = "reading_comprehension"
)

var knownTasks = map[Task]struct{}{
	TextClassification:            {},
	OpinionMining:                 {},
	PinyinTransliteration:         {},
	ClassicalChineseUnderstanding: {},
	SentimentAnalysis:             {},
	InstructionFollowing:          {},
	FactChecking:                  {},
	Translation:                   {},
	IntentUnderstanding:           {},
	CoreferenceResolution:         {},
	ReadingComprehension:          {},
}

// Valid reports whether t is a recognized task name.
func (t Task) Valid() bool {
	_, ok := knownTasks[t]
	return ok
}

// Splits returns the dataset partitions the task ships with, in load
// order. Instruction following has no in-context examples and is
// distributed as a test split only.
func (t Task) Splits() []Split {
	if t == InstructionFollowing {
		return []Split{TestSplit}
	}
	return []Split{TrainSplit, TestSplit}
}

// Tasks returns all recognized task names, sorted.
func Tasks() []Task {
	out := make([]Task, 0, len(knownTasks))
	for t := range knownTasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
