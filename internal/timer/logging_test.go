package timer

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.log")
	logger, closer, err := NewLogger(GlobalOptions{}, lookupFrom(map[string]string{"log_file": path}))
	require.NoError(t, err)

	logger.Debug("loaded mapping", "timer_name", "tea")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded mapping")
	assert.Contains(t, string(data), "timer_name=tea")
	assert.Contains(t, string(data), "pid=")
}

func TestNewLoggerFlagWinsOverEnv(t *testing.T) {
	dir := t.TempDir()
	flagPath := filepath.Join(dir, "flag.log")
	envPath := filepath.Join(dir, "env.log")

	logger, closer, err := NewLogger(GlobalOptions{LogFile: flagPath}, lookupFrom(map[string]string{"log_file": envPath}))
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closer.Close())

	assert.FileExists(t, flagPath)
	assert.NoFileExists(t, envPath)
}

func TestNewLoggerStderrLevels(t *testing.T) {
	logger, closer, err := NewLogger(GlobalOptions{}, lookupFrom(nil))
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.False(t, logger.Enabled(t.Context(), slog.LevelDebug))

	verbose, _, err := NewLogger(GlobalOptions{Verbose: true}, lookupFrom(nil))
	require.NoError(t, err)
	assert.True(t, verbose.Enabled(t.Context(), slog.LevelDebug))
}

func TestNewLoggerBadPath(t *testing.T) {
	_, _, err := NewLogger(GlobalOptions{LogFile: filepath.Join(t.TempDir(), "missing", "x.log")}, lookupFrom(nil))
	assert.ErrorContains(t, err, "open log file")
}
