package questions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapping(t *testing.T) {
	qs, err := Parse([]byte(`
questions:
  - id: deploy
    question: "Deploy to **production**?"
    options: [yes, no]
  - question: Anything else?
`))
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "deploy", qs[0].ID)
	assert.Equal(t, []string{"yes", "no"}, qs[0].Options)
	assert.Empty(t, qs[1].Options)

	_, err = uuid.Parse(qs[1].ID)
	assert.NoError(t, err, "missing ids become UUIDs")
}

func TestParseSequence(t *testing.T) {
	qs, err := Parse([]byte("- question: one\n- question: two\n  options: [a]\n"))
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "two", qs[1].Text)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty document", "", "no questions"},
		{"empty list", "questions: []", "no questions"},
		{"scalar", "just text", "expected a list or a mapping"},
		{"malformed", "questions: [", "failed to parse"},
		{"blank text", "- question: '  '", "question 1: question text is empty"},
		{"blank option", "- question: q\n  options: [a, '']", "option 2 is empty"},
		{"duplicate option", "- question: q\n  options: [a, a]", "duplicate option"},
		{"duplicate id", "- {id: x, question: a}\n- {id: x, question: b}", "already used by question 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseEmptyIsErrNoQuestions(t *testing.T) {
	_, err := Parse([]byte("questions: []"))
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestNew(t *testing.T) {
	q, err := New("", "Name?", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)

	q, err = New("fixed", "Pick", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", q.ID)

	_, err = New("", "", nil)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- question: hi\n"), 0644))

	qs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, qs, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read questions")
}
