package timing_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/schrodinger/timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTrack_Success(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	got, err := timing.Track(log, "solve", func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "solve", fields["func"])
	assert.Contains(t, fields, "elapsed")
}

func TestTrack_Error(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	boom := errors.New("boom")

	got, err := timing.Track(zap.New(core), "solve", func() (string, error) { return "partial", boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", got)

	entries := logs.FilterField(zap.String("func", "solve")).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestTrack_NilLogger(t *testing.T) {
	got, err := timing.Track(nil, "noop", func() (float64, error) { return 1.5, nil })
	require.NoError(t, err)
	assert.Equal(t, 1.5, got)
}

func TestStopwatch(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sw := timing.Start(zap.New(core), "assemble")
	elapsed := sw.Stop()

	assert.GreaterOrEqual(t, int64(elapsed), int64(0))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "assemble", logs.All()[0].ContextMap()["stage"])

	assert.NotPanics(t, func() { timing.Start(nil, "quiet").Stop() })
}
