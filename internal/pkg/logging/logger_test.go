package logging_test

import (
	"io"
	"os"
	"testing"

	"bank-core/internal/config"
	"bank-core/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageLevelLoggingIsSafeBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		logging.Info("no default logger yet", map[string]interface{}{"k": "v"})
		logging.Warn("still no default logger", nil)
		logging.Error("still none", assert.AnError, nil)
	})
}

func TestNewBuildsAnIndependentLogger(t *testing.T) {
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "warn", Format: "json"}}
	l := logging.New(cfg)

	assert.NotNil(t, l)
	assert.NotPanics(t, func() {
		l.Debug("below threshold, should be dropped silently")
		l.Info("also below threshold")
		l.Warn("at threshold")
		l.Error("above threshold", assert.AnError, map[string]interface{}{"op": "test"})
	})
}

func TestInitSetsThePackageLevelDefault(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	cfg := &config.Config{Logging: config.LoggingConfig{Level: "debug", Format: "text"}}
	logging.Init(cfg)
	os.Stdout = stdout

	assert.NotPanics(t, func() {
		logging.Debug("now routed through the default logger")
	})
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "now routed through the default logger")
}
