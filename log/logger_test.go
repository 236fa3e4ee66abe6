package log

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/mudrex/common/convert"
)

// syncBuffer guards bytes.Buffer for tests that log from many goroutines
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestSplitLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Levels{Info: true, Debug: true, Warn: true, Error: true}, splitLevel("INFO|DEBUG|WARN|ERROR"))
	assert.Equal(t, Levels{Warn: true}, splitLevel("warn"))
	assert.Equal(t, Levels{}, splitLevel(""))
}

func TestGetWriters(t *testing.T) {
	t.Parallel()
	_, err := getWriters(nil)
	assert.ErrorIs(t, err, errSubloggerConfigIsNil)

	_, err = getWriters(&SubLoggerConfig{Output: "console|carrier-pigeon"})
	assert.ErrorIs(t, err, errUnhandledOutputWriter)

	_, err = getWriters(&SubLoggerConfig{Output: "stdout|console"})
	assert.ErrorIs(t, err, errWriterAlreadyLoaded, "stdout and console are the same writer")

	w, err := getWriters(&SubLoggerConfig{Output: "stderr"})
	require.NoError(t, err)
	assert.NotNil(t, w)
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()
	_, err := MultiWriter(nil)
	assert.ErrorIs(t, err, errWriterIsNil)

	a, b := &bytes.Buffer{}, &bytes.Buffer{}
	mw, err := MultiWriter(a, b)
	require.NoError(t, err)
	assert.ErrorIs(t, mw.Add(a), errWriterAlreadyLoaded)

	n, err := mw.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())

	require.NoError(t, mw.Remove(a))
	assert.ErrorIs(t, mw.Remove(a), errWriterNotFound)
	_, err = mw.Write([]byte("!"))
	require.NoError(t, err)
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello!", b.String())

	errW := errWriter{}
	require.NoError(t, mw.Add(errW))
	_, err = mw.Write([]byte("x"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, io.ErrClosedPipe }

// TestSubLoggerOutput mutates package state so it does not run in parallel
func TestSubLoggerOutput(t *testing.T) {
	buf := &syncBuffer{}
	sl := registerNewSubLogger("TESTOUTPUT")
	sl.SetOutput(buf)
	sl.SetLevels("INFO|WARN")

	Infof(sl, "hello %s", "world")
	Debugf(sl, "should not appear")
	Warn(sl, "careful")
	Error(sl, "dropped")

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "hello world")
	assert.Contains(t, out, "TESTOUTPUT")
	assert.Contains(t, out, "careful")
	assert.NotContains(t, out, "should not appear")
	assert.NotContains(t, out, "dropped")
	assert.Equal(t, 2, strings.Count(out, "\n"))

	var nilLogger *SubLogger
	assert.NotPanics(t, func() { Info(nilLogger, "nothing") })
}

func TestConfigureSubLogger(t *testing.T) {
	registerNewSubLogger("TESTCONFIGURE")
	err := SetupSubLoggers([]SubLoggerConfig{{Name: "doesnotexist", Level: "INFO", Output: "stdout"}})
	assert.ErrorIs(t, err, errSubLoggerNotFound)

	err = SetupSubLoggers([]SubLoggerConfig{{Name: "testconfigure", Level: "DEBUG", Output: "stderr"}})
	require.NoError(t, err)
	mu.RLock()
	assert.Equal(t, Levels{Debug: true}, subLoggers["TESTCONFIGURE"].levels)
	mu.RUnlock()
}

func TestSetupGlobalLogger(t *testing.T) {
	assert.ErrorIs(t, SetupGlobalLogger(nil), errSubloggerConfigIsNil)

	cfg := GenDefaultSettings()
	cfg.Output = "teletype"
	assert.ErrorIs(t, SetupGlobalLogger(&cfg), errUnhandledOutputWriter)

	cfg = GenDefaultSettings()
	cfg.Enabled = convert.BoolPtr(false)
	require.NoError(t, SetupGlobalLogger(&cfg))

	buf := &syncBuffer{}
	sl := registerNewSubLogger("TESTDISABLED")
	sl.SetOutput(buf)
	Info(sl, "silenced")
	assert.Empty(t, buf.String())

	def := GenDefaultSettings()
	require.NoError(t, SetupGlobalLogger(&def))
}

func TestSetCustomLoghook(t *testing.T) {
	buf := &syncBuffer{}
	sl := registerNewSubLogger("TESTHOOK")
	sl.SetOutput(buf)
	sl.SetLevels("ERROR")

	var captured []string
	SetCustomLogHook(func(header, name string, a ...any) bool {
		captured = append(captured, header+name)
		return true
	})
	Errorf(sl, "boom %v", errors.New("bang"))
	SetCustomLogHook(nil)

	assert.Empty(t, buf.String(), "hook bypass must suppress internal output")
	assert.Equal(t, []string{"[ERROR]TESTHOOK"}, captured)
}
