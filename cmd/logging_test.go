package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/interop-score/internal/config"
)

// setFlags overrides CLI flag globals for one test.
func setFlags(t *testing.T, logLevel, format string, noStore bool) {
	t.Helper()
	oldLevel, oldFormat, oldNoStore, oldTrace := flagLogLevel, flagFormat, flagNoStore, flagTrace
	t.Cleanup(func() {
		flagLogLevel, flagFormat, flagNoStore, flagTrace = oldLevel, oldFormat, oldNoStore, oldTrace
	})
	flagLogLevel, flagFormat, flagNoStore, flagTrace = logLevel, format, noStore, false
}

func TestApplyLogLevelFlagWins(t *testing.T) {
	setFlags(t, "error", "json", true)
	logger := logrus.New()
	require.NoError(t, applyLogLevel(logger, "debug"))
	assert.Equal(t, logrus.ErrorLevel, logger.GetLevel())
}

func TestApplyLogLevelInvalid(t *testing.T) {
	setFlags(t, "", "json", true)
	assert.Error(t, applyLogLevel(logrus.New(), "chatty"))
}

func TestTraceKeepsLoggerLevel(t *testing.T) {
	setFlags(t, "", "json", true)
	_, cfgPath := setupWorkspace(t)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn")
	require.NoError(t, err)

	_, err = scoreConfig(cfg, logger, true)
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.Contains(t, buf.String(), "scored test")

	// Later output on the shared logger still honours its own level.
	buf.Reset()
	logger.Info("after trace")
	assert.Empty(t, buf.String())
}

func TestRescoreAppliesReloadedLogLevel(t *testing.T) {
	setFlags(t, "", "json", true)
	_, cfgPath := setupWorkspace(t)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	var logs, out bytes.Buffer
	logger, err := newLogger(&logs, "info")
	require.NoError(t, err)

	cfg.LogLevel = "warn"
	require.NoError(t, rescore(cfg, logger, &out))
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.True(t, strings.Contains(out.String(), `"good"`), "expected json report, got:\n%s", out.String())

	cfg.LogLevel = "debug"
	require.NoError(t, rescore(cfg, logger, &out))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestRescoreRejectsBadLogLevel(t *testing.T) {
	setFlags(t, "", "json", true)
	_, cfgPath := setupWorkspace(t)
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	logger := logrus.New()
	cfg.LogLevel = "chatty"
	assert.Error(t, rescore(cfg, logger, &bytes.Buffer{}))
}
