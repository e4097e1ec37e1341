package scenario

import (
	"errors"
	"fmt"
)

// BuildInstance converts one raw record into an Instance tagged with the
// given split. The task decides how the input text is assembled; reference
// construction is shared by all tasks.
func BuildInstance(task Task, row *Row, split Split) (*Instance, error) {
	if row == nil {
		return nil, errors.New("scenario: nil row")
	}
	if !task.Valid() {
		return nil, fmt.Errorf("scenario: unknown task %q", task)
	}

	refs, err := buildReferences(row)
	if err != nil {
		return nil, err
	}

	return &Instance{
		Input:      inputText(task, row),
		References: refs,
		Split:      split,
	}, nil
}

// inputText assembles the instance input. The literal markers and spacing
// are embedded verbatim into model prompts downstream and must not change.
func inputText(task Task, row *Row) string {
	switch task {
	case IntentUnderstanding:
		return row.Context + "\n\n问题：" + row.Question
	case ReadingComprehension:
		return row.Context + "\n\n问题：" + row.Question + "\n"
	case CoreferenceResolution:
		return row.Context + "\n在上文中，“" + row.Span1 + "”和“" + row.Span2 + "”是否指代了同一个对象？\n"
	default:
		return row.Text
	}
}

// buildReferences turns a record's choices/label fields into references.
// With a choices key present the record is multiple-choice: every choice
// becomes a reference, the label indices resolve to answer strings, and a
// choice is correct when its text matches a resolved answer. A choice whose
// text duplicates a labeled answer is therefore also correct. Without a
// choices key the label entries are the literal answers. Malformed labels
// fail fast rather than yielding an empty correct set.
func buildReferences(row *Row) ([]Reference, error) {
	if row.HasChoices {
		answers := make(map[string]struct{}, len(row.Labels))
		for _, l := range row.Labels {
			if !l.IsIndex {
				return nil, fmt.Errorf("scenario: choice record has non-index label %q", l.Text)
			}
			if l.Index < 0 || l.Index >= len(row.Choices) {
				return nil, fmt.Errorf("scenario: label index %d out of range (%d choices)", l.Index, len(row.Choices))
			}
			answers[row.Choices[l.Index]] = struct{}{}
		}

		refs := make([]Reference, 0, len(row.Choices))
		for _, choice := range row.Choices {
			var tags []string
			if _, ok := answers[choice]; ok {
				tags = []string{CorrectTag}
			}
			refs = append(refs, Reference{Output: choice, Tags: tags})
		}
		return refs, nil
	}

	refs := make([]Reference, 0, len(row.Labels))
	for _, l := range row.Labels {
		if l.IsIndex {
			return nil, fmt.Errorf("scenario: record without choices has index label %d", l.Index)
		}
		refs = append(refs, Reference{Output: l.Text, Tags: []string{CorrectTag}})
	}
	return refs, nil
}
