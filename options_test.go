package geminimcp

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	logger := slog.Default()

	options := applyOptions([]Option{
		WithLogger(logger),
		WithCliPath("/opt/gemini"),
		WithGracePeriod(time.Second),
		WithPollInterval(2 * time.Second),
		WithExitTimeout(3 * time.Second),
		WithJoinTimeout(4 * time.Second),
		WithMaxLineSize(2048),
	})

	require.Same(t, logger, options.Logger)
	require.Equal(t, "/opt/gemini", options.CliPath)
	require.Equal(t, Timing{
		GracePeriod:  time.Second,
		PollInterval: 2 * time.Second,
		ExitTimeout:  3 * time.Second,
		JoinTimeout:  4 * time.Second,
	}, options.Timing)
	require.Equal(t, 2048, options.MaxLineSize)
}

func TestApplyOptions_Empty(t *testing.T) {
	options := applyOptions(nil)

	require.Nil(t, options.Logger)
	require.Empty(t, options.CliPath)
	require.Zero(t, options.Timing)
}

func TestWithOptions_LaterOptionsWin(t *testing.T) {
	base := &Options{
		CliPath:     "/from/file",
		MaxLineSize: 10,
		Timing:      Timing{ExitTimeout: time.Minute},
	}

	options := applyOptions([]Option{
		WithOptions(base),
		WithCliPath("/from/flag"),
	})

	require.Equal(t, "/from/flag", options.CliPath)
	require.Equal(t, 10, options.MaxLineSize)
	require.Equal(t, time.Minute, options.Timing.ExitTimeout)
	require.Zero(t, options.Timing.GracePeriod)

	require.NotPanics(t, func() { applyOptions([]Option{WithOptions(nil)}) })
}

func TestNopLogger(t *testing.T) {
	log := NopLogger()

	require.NotNil(t, log)
	require.NotPanics(t, func() { log.Info("discarded", "key", "value") })
}
