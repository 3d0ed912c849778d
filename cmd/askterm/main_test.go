package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"askterm/cmd/askterm/tui"
	"askterm/cmd/askterm/ui"
	"askterm/internal/config"
	"askterm/internal/prompt"
)

// resetFlags clears the package-level flag targets shared by every Execute.
func resetFlags(t *testing.T) {
	t.Helper()
	logger = zap.NewNop()
	verbose = false
	askQuestion, askOptions, askID, askFile = "", nil, "", ""
	askCopy, askJSON, askNoHistory = false, false, false
	historyLimit, historySession, historyJSON = 20, "", false
	configForce = false
}

// stubPrompt replaces the terminal UI with a fixed key sequence.
func stubPrompt(t *testing.T, keys ...prompt.KeyEvent) {
	t.Helper()
	prev := promptRunner
	promptRunner = func(ctx context.Context, s *prompt.Session, v ui.View, k tui.KeyMap) (string, error) {
		for _, ev := range keys {
			s.HandleKey(ev)
		}
		if !s.Done() {
			return "", tui.ErrCancelled
		}
		return s.Answer(), nil
	}
	t.Cleanup(func() { promptRunner = prev })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func testEnv(t *testing.T) (cfgPath, dbPath string) {
	t.Helper()
	resetFlags(t)
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "history.db")
	t.Setenv("ASKTERM_HISTORY_DB", dbPath)
	t.Setenv("ASKTERM_DEBUG", "")
	return filepath.Join(dir, "config.yaml"), dbPath
}

func TestResolveQuestions(t *testing.T) {
	resetFlags(t)

	qs, err := resolveQuestions([]string{"Ready", "to", "go?"})
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Ready to go?", qs[0].Text)
	assert.NotEmpty(t, qs[0].ID)

	askQuestion, askID, askOptions = "Deploy?", "deploy", []string{"yes", "no"}
	qs, err = resolveQuestions(nil)
	require.NoError(t, err)
	assert.Equal(t, "deploy", qs[0].ID)
	assert.Equal(t, []string{"yes", "no"}, qs[0].Options)

	askFile = "questions.yaml"
	_, err = resolveQuestions(nil)
	assert.ErrorContains(t, err, "not both")

	resetFlags(t)
	_, err = resolveQuestions(nil)
	assert.ErrorContains(t, err, "question is required")
}

func TestResolveQuestionsFromFile(t *testing.T) {
	resetFlags(t)
	askFile = filepath.Join(t.TempDir(), "qs.yaml")
	require.NoError(t, os.WriteFile(askFile, []byte(`questions:
  - id: env
    question: Which environment?
    options: [staging, production]
  - id: notes
    question: Anything else?
`), 0644))

	qs, err := resolveQuestions(nil)
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "env", qs[0].ID)
	assert.Empty(t, qs[1].Options)
}

func TestPrintAnswer(t *testing.T) {
	resetFlags(t)
	a := answer{ID: "q1", Question: "Q", Value: "line1\nline2", Mode: "input"}

	var buf bytes.Buffer
	require.NoError(t, printAnswer(&buf, a))
	assert.Equal(t, "q1\tline1\nline2\n", buf.String())

	askJSON = true
	buf.Reset()
	require.NoError(t, printAnswer(&buf, a))
	var got answer
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, a, got)
}

func TestAskSelectsOptionAndRecordsHistory(t *testing.T) {
	cfgPath, dbPath := testEnv(t)
	stubPrompt(t, prompt.KeyDown, prompt.KeyEnter)

	out, err := execute(t, "--config", cfgPath, "ask", "--id", "deploy", "-o", "yes", "-o", "no", "Deploy?")
	require.NoError(t, err)
	assert.Equal(t, "deploy\tno\n", out)
	assert.FileExists(t, dbPath)

	resetFlags(t)
	out, err = execute(t, "--config", cfgPath, "history", "--json")
	require.NoError(t, err)

	var entry struct {
		SessionID string   `json:"session_id"`
		Question  string   `json:"question"`
		Options   []string `json:"options"`
		Mode      string   `json:"mode"`
		Value     string   `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &entry))
	assert.Equal(t, "deploy", entry.SessionID)
	assert.Equal(t, "Deploy?", entry.Question)
	assert.Equal(t, []string{"yes", "no"}, entry.Options)
	assert.Equal(t, "option", entry.Mode)
	assert.Equal(t, "no", entry.Value)
}

func TestAskFreeTextJSON(t *testing.T) {
	cfgPath, _ := testEnv(t)
	stubPrompt(t, prompt.Runes("a"), prompt.KeyShiftEnter, prompt.Runes("b"), prompt.KeyEnter)

	out, err := execute(t, "--config", cfgPath, "ask", "--json", "--no-history", "--id", "notes", "-q", "Notes?")
	require.NoError(t, err)

	var got answer
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, answer{ID: "notes", Question: "Notes?", Value: "a\nb", Mode: "input"}, got)
}

func TestAskCancelled(t *testing.T) {
	cfgPath, _ := testEnv(t)
	stubPrompt(t, prompt.Runes("x"))

	out, err := execute(t, "--config", cfgPath, "ask", "Q?")
	assert.ErrorIs(t, err, tui.ErrCancelled)
	assert.NotContains(t, out, "\tx")
}

func TestHistoryEmpty(t *testing.T) {
	cfgPath, _ := testEnv(t)

	out, err := execute(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No history recorded yet.")
}

func TestHistoryTable(t *testing.T) {
	cfgPath, _ := testEnv(t)
	stubPrompt(t, prompt.Runes("h"), prompt.KeyShiftEnter, prompt.Runes("i"), prompt.KeyEnter)

	_, err := execute(t, "--config", cfgPath, "ask", "--id", "greet", "Say hi")
	require.NoError(t, err)

	resetFlags(t)
	out, err := execute(t, "--config", cfgPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "ANSWER")
	assert.Contains(t, out, "greet")
	assert.Contains(t, out, "h ⏎ i")
}

func TestConfigInit(t *testing.T) {
	cfgPath, _ := testEnv(t)

	out, err := execute(t, "--config", cfgPath, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	assert.FileExists(t, cfgPath)

	resetFlags(t)
	_, err = execute(t, "--config", cfgPath, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	resetFlags(t)
	_, err = execute(t, "--config", cfgPath, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigShowAppliesEnv(t *testing.T) {
	cfgPath, dbPath := testEnv(t)

	out, err := execute(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "database_path: "+dbPath)
	assert.Contains(t, out, "arrow_policy: options")
}

func TestTruncateStr(t *testing.T) {
	assert.Equal(t, "abc", truncateStr("abc", 3))
	assert.Equal(t, "ab…", truncateStr("abcd", 3))
	assert.Equal(t, "a ⏎ b", oneLine("a\nb\n"))
}

func TestErrorLine(t *testing.T) {
	resetFlags(t)
	prev := cfg
	t.Cleanup(func() { cfg = prev })

	cfg = nil
	assert.Equal(t, "Error: boom", errorLine(errors.New("boom")))

	cfg = config.DefaultConfig()
	cfg.UI.Theme = "dark"
	assert.Contains(t, errorLine(errors.New("boom")), "Error: boom")
}
