// Package questions loads the questions an ask run presents, either from
// command-line flags or from a YAML batch file.
//
// A batch file is either a list of questions or a mapping with a
// "questions" key:
//
//	questions:
//	  - id: deploy
//	    question: "Deploy to **production**?"
//	    options: [yes, no]
//	  - question: Anything else?
package questions

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ErrNoQuestions is returned when a batch holds no questions.
var ErrNoQuestions = errors.New("no questions")

// Question is one prompt to answer.
type Question struct {
	ID      string   `yaml:"id,omitempty" json:"id"`
	Text    string   `yaml:"question" json:"question"`
	Options []string `yaml:"options,omitempty" json:"options,omitempty"`
}

type batch struct {
	Questions []Question `yaml:"questions"`
}

// New builds a single question, generating an id when id is empty.
func New(id, text string, options []string) (Question, error) {
	qs, err := normalize([]Question{{ID: id, Text: text, Options: options}})
	if err != nil {
		return Question{}, err
	}
	return qs[0], nil
}

// Load reads and validates a batch file.
func Load(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}
	qs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return qs, nil
}

// Parse decodes and validates a batch.
func Parse(data []byte) ([]Question, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrNoQuestions
	}

	var qs []Question
	switch doc := root.Content[0]; doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&qs); err != nil {
			return nil, fmt.Errorf("failed to parse questions: %w", err)
		}
	case yaml.MappingNode:
		var b batch
		if err := doc.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to parse questions: %w", err)
		}
		qs = b.Questions
	default:
		return nil, fmt.Errorf("failed to parse questions: expected a list or a mapping")
	}
	return normalize(qs)
}

// Validate checks a single question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is empty")
	}
	seen := make(map[string]bool, len(q.Options))
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("option %d is empty", i+1)
		}
		if seen[o] {
			return fmt.Errorf("duplicate option %q", o)
		}
		seen[o] = true
	}
	return nil
}

func normalize(qs []Question) ([]Question, error) {
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	out := make([]Question, len(qs))
	ids := make(map[string]int, len(qs))
	for i, q := range qs {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if q.ID == "" {
			q.ID = uuid.New().String()
		}
		if prev, dup := ids[q.ID]; dup {
			return nil, fmt.Errorf("question %d: id %q already used by question %d", i+1, q.ID, prev)
		}
		ids[q.ID] = i + 1
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out, nil
}
