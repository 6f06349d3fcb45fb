package interop_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/interop-score/internal/interop"
)

func TestLogObserver(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	runs := []interop.Run{{"a": withSubtests("OK", "PASS", "FAIL", "PASS")}}
	_, err := interop.ScoreRuns(runs, interop.NewSet("a"), nil,
		interop.WithObserver(interop.LogObserver(logger)))
	require.NoError(t, err)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "a", entry.Data["test"])
	assert.Equal(t, "OK", entry.Data["status"])
	assert.Equal(t, uint32(2), entry.Data["passes"])
	assert.Equal(t, uint32(3), entry.Data["total"])
}

func TestLogObserverSuppressedAboveDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	runs := []interop.Run{{"a": simple("PASS")}}
	_, err := interop.ScoreRuns(runs, interop.NewSet("a"), nil,
		interop.WithObserver(interop.LogObserver(logger)))
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())
}
