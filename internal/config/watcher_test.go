package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledstripd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0644))

	loader := func(p string) (*Config, error) { return Load(p, nil) }
	w := NewWatcher(path, loader, slog.New(slog.NewTextHandler(io.Discard, nil)), WithDebounce[*Config](20*time.Millisecond))

	levels := make(chan string, 4)
	w.OnReload(func(c *Config) { levels <- c.Logging.Level })

	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	select {
	case level := <-levels:
		assert.Equal(t, LogLevelDebug, level)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_UnsubscribedHandlerNotCalled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledstripd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0644))

	w := NewWatcher(path, func(p string) (*Config, error) { return Load(p, nil) }, slog.New(slog.NewTextHandler(io.Discard, nil)))

	called := false
	unsub := w.OnReload(func(*Config) { called = true })
	unsub()

	w.reload()
	assert.False(t, called)
}

func TestWatcher_StartMissingFile(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope.yaml"), func(p string) (*Config, error) { return Load(p, nil) }, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, w.Start())
	assert.NoError(t, w.Stop())
}
