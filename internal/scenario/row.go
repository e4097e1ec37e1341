package scenario

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Row is one raw record from a JSON-lines split file. Which keys appear
// varies by task, and the builder must distinguish an absent choices key
// from an empty one, so unmarshalling records presence.
type Row struct {
	Text       string
	Choices    []string
	HasChoices bool
	Labels     []Label
	Context    string
	Question   string
	Span1      string
	Span2      string
}

type rowJSON struct {
	Text     string    `json:"text"`
	Choices  *[]string `json:"choices"`
	Label    []Label   `json:"label"`
	Context  string    `json:"context"`
	Question string    `json:"question"`
	Span1    string    `json:"span1"`
	Span2    string    `json:"span2"`
}

func (r *Row) UnmarshalJSON(data []byte) error {
	var aux rowJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Text = aux.Text
	r.HasChoices = aux.Choices != nil
	if aux.Choices != nil {
		r.Choices = *aux.Choices
	} else {
		r.Choices = nil
	}
	r.Labels = aux.Label
	r.Context = aux.Context
	r.Question = aux.Question
	r.Span1 = aux.Span1
	r.Span2 = aux.Span2
	return nil
}

// Label is one entry of a record's label list: either an integer index
// into the record's choices or a literal answer string.
type Label struct {
	Index   int
	Text    string
	IsIndex bool
}

func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return errors.New("scenario: empty label")
	}

	if data[0] == '"' {
		l.IsIndex = false
		l.Index = 0
		return json.Unmarshal(data, &l.Text)
	}

	var idx int
	if err := json.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("scenario: label must be an index or a string: %w", err)
	}
	l.Index = idx
	l.Text = ""
	l.IsIndex = true
	return nil
}

func (l Label) MarshalJSON() ([]byte, error) {
	if l.IsIndex {
		return json.Marshal(l.Index)
	}
	return json.Marshal(l.Text)
}
