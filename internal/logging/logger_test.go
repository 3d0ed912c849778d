package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLogs(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var sb strings.Builder
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		sb.Write(data)
	}
	return sb.String()
}

// TestAllCategoriesLog tests that every category writes to the log file when debug_mode is true
func TestAllCategoriesLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{DebugMode: true, Level: "debug", Dir: dir}))

	categories := []Category{
		CategoryBoot, CategorySession, CategoryInput,
		CategoryClipboard, CategoryHistory, CategoryConfig,
	}
	for _, cat := range categories {
		Get(cat).Info("hello from %s", cat)
	}
	CloseAll()

	logs := readLogs(t, dir)
	for _, cat := range categories {
		assert.Contains(t, logs, "hello from "+string(cat))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_askterm.log"))
}

func TestDebugModeDisabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, Initialize(Options{DebugMode: false, Dir: dir}))
	defer CloseAll()

	assert.False(t, IsDebugMode())
	assert.False(t, IsCategoryEnabled(CategoryBoot))
	Boot("should not appear")

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "no log directory in production mode")
}

func TestDebugModeRequiresDir(t *testing.T) {
	err := Initialize(Options{DebugMode: true})
	require.Error(t, err)
	CloseAll()
}

func TestCategoryToggle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{
		DebugMode:  true,
		Level:      "debug",
		Dir:        dir,
		Categories: map[string]bool{"input": false, "session": true},
	}))

	assert.False(t, IsCategoryEnabled(CategoryInput))
	assert.True(t, IsCategoryEnabled(CategorySession))
	assert.True(t, IsCategoryEnabled(CategoryHistory), "unlisted categories default to enabled")

	InputDebug("keystroke noise")
	SessionDebug("session kept")
	CloseAll()

	logs := readLogs(t, dir)
	assert.NotContains(t, logs, "keystroke noise")
	assert.Contains(t, logs, "session kept")
}

func TestSetLevelFiltersLive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{DebugMode: true, Level: "info", Dir: dir}))

	ClipboardDebug("hidden at info")
	SetLevel("debug")
	assert.Equal(t, "debug", Level())
	ClipboardDebug("visible at debug")
	CloseAll()

	logs := readLogs(t, dir)
	assert.NotContains(t, logs, "hidden at info")
	assert.Contains(t, logs, "visible at debug")
}

func TestJSONFormatAndWith(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{DebugMode: true, Format: "json", Dir: dir}))

	Get(CategorySession).With("session_id", "abc-123").Info("submitted")
	CloseAll()

	logs := readLogs(t, dir)
	assert.Contains(t, logs, `"session_id":"abc-123"`)
	assert.Contains(t, logs, `"logger":"session"`)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"warn":    "warn",
		"warning": "warn",
		"error":   "error",
		"info":    "info",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in).String(), in)
	}
}

func TestConcurrentGet(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{DebugMode: true, Dir: dir}))
	defer CloseAll()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Get(CategoryHistory).Info("writer %d", i)
		}(i)
	}
	wg.Wait()
	assert.Same(t, Get(CategoryHistory), Get(CategoryHistory))
}

func TestTimerLogging(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Initialize(Options{DebugMode: true, Level: "debug", Dir: dir}))

	timer := StartTimer(CategoryClipboard, "read")
	time.Sleep(5 * time.Millisecond)
	elapsed := timer.StopWithThreshold(time.Nanosecond)
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)

	StartTimer(CategoryClipboard, "write").Stop()
	CloseAll()

	logs := readLogs(t, dir)
	assert.Contains(t, logs, "read took")
	assert.Contains(t, logs, "write completed in")
}
