package clipboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stub swaps the platform hooks for the duration of a test.
func stub(t *testing.T, read func() (string, error), write func(string) error, unsupported bool) {
	t.Helper()
	origRead, origWrite, origUnsupported := clipboardReadAll, clipboardWriteAll, clipboardUnsupported
	t.Cleanup(func() {
		clipboardReadAll, clipboardWriteAll, clipboardUnsupported = origRead, origWrite, origUnsupported
	})
	if read != nil {
		clipboardReadAll = read
	}
	if write != nil {
		clipboardWriteAll = write
	}
	clipboardUnsupported = func() bool { return unsupported }
}

func TestReadNormalizesAndTrims(t *testing.T) {
	stub(t, func() (string, error) { return "  line one\r\nline two\r\n", nil }, nil, false)

	got, err := New(Options{TrimSpace: true}).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)

	got, err = New(Options{}).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "  line one\nline two\n", got)
}

func TestReadError(t *testing.T) {
	boom := errors.New("xclip: exit status 1")
	stub(t, func() (string, error) { return "", boom }, nil, false)

	_, err := New(Options{}).Read(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestReadUnsupported(t *testing.T) {
	stub(t, func() (string, error) {
		t.Fatal("utility must not run when unsupported")
		return "", nil
	}, nil, true)

	_, err := New(Options{}).Read(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestReadTimeout(t *testing.T) {
	release := make(chan struct{})
	stub(t, func() (string, error) {
		<-release
		return "slow", nil
	}, nil, false)
	defer close(release)

	start := time.Now()
	_, err := New(Options{Timeout: 20 * time.Millisecond}).Read(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestReadHonoursCancel(t *testing.T) {
	release := make(chan struct{})
	stub(t, func() (string, error) {
		<-release
		return "", nil
	}, nil, false)
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentReadsShareOneInvocation(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	stub(t, func() (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}, nil, false)

	c := New(Options{Timeout: 5 * time.Second})
	var wg sync.WaitGroup
	results := make([]string, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Read(context.Background())
		}(i)
	}
	// Let every reader join the in-flight call before releasing it.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []string{"shared", "shared", "shared", "shared"}, results)
}

func TestWrite(t *testing.T) {
	var written string
	stub(t, nil, func(s string) error { written = s; return nil }, false)

	require.NoError(t, New(Options{}).Write("answer"))
	assert.Equal(t, "answer", written)
}

func TestWriteErrors(t *testing.T) {
	boom := errors.New("pbcopy missing")
	stub(t, nil, func(string) error { return boom }, false)
	assert.ErrorIs(t, New(Options{}).Write("x"), boom)

	stub(t, nil, nil, true)
	assert.ErrorIs(t, New(Options{}).Write("x"), ErrUnavailable)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\nb\nc", Normalize("a\r\nb\rc"))
	assert.Equal(t, "plain", Normalize("plain"))
}
