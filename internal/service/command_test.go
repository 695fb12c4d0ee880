package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-warp/internal/models"
	"time-warp/internal/repository"
	"time-warp/internal/timewarp"
)

func newTestRunner(t *testing.T) *CommandRunner {
	t.Helper()

	db, err := repository.NewSQLiteDB(t.TempDir() + "/commands.db")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema())

	warps := NewWarpService(repository.NewWarpRepository(db))
	return NewCommandRunner(NewTravelService(warps), warps)
}

func TestExecuteNowUnderAbsoluteTravel(t *testing.T) {
	runner := newTestRunner(t)

	out, err := runner.Execute(context.Background(), []string{"travel", "to", "1700000000000", "now"})
	require.NoError(t, err)
	assert.Contains(t, out, "epoch-ms 1700000000000")
}

func TestExecuteNestedTravel(t *testing.T) {
	runner := newTestRunner(t)

	// A relative hop inside an absolute pin lands on the shifted instant.
	out, err := runner.Execute(context.Background(), []string{
		"travel", "to", "1700000000000",
		"travel", "by", "1h",
		"now",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "epoch-ms 1700003600000")

	// A nested absolute fully overrides the outer one.
	out, err = runner.Execute(context.Background(), []string{
		"travel", "to", "1700000000000",
		"travel", "to", "1800000000000",
		"now",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "epoch-ms 1800000000000")
}

func TestExecuteRejectsRelativeUnderRelative(t *testing.T) {
	runner := newTestRunner(t)

	_, err := runner.Execute(context.Background(), []string{
		"travel", "by", "1h",
		"travel", "by", "1m",
		"now",
	})
	assert.ErrorIs(t, err, timewarp.ErrNestedRelative)
}

func TestExecuteWarpLifecycle(t *testing.T) {
	runner := newTestRunner(t)
	ctx := context.Background()

	out, err := runner.Execute(ctx, []string{"warp", "create", "a", "by", "1h"})
	require.NoError(t, err)
	assert.Contains(t, out, `warp "a" created`)

	// Travelling through the warp applies the stored relative offset.
	base := time.Date(2026, 1, 9, 10, 0, 0, 0, time.UTC)
	timewarp.SetNowFunc(func() time.Time { return base })
	defer timewarp.SetNowFunc(nil)

	out, err = runner.Execute(ctx, []string{"travel", "warp", "a", "now"})
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("epoch-ms %d", base.Add(time.Hour).UnixMilli()))

	out, err = runner.Execute(ctx, []string{"warp", "list"})
	require.NoError(t, err)
	assert.Contains(t, out, "a: by 1h0m0s")

	_, err = runner.Execute(ctx, []string{"warp", "create", "a", "to", "2030-01-01"})
	assert.ErrorIs(t, err, models.ErrWarpExists)

	out, err = runner.Execute(ctx, []string{"warp", "delete", "a"})
	require.NoError(t, err)
	assert.Contains(t, out, `warp "a" deleted`)

	_, err = runner.Execute(ctx, []string{"travel", "warp", "a", "now"})
	assert.ErrorIs(t, err, models.ErrWarpNotFound)

	out, err = runner.Execute(ctx, []string{"warp", "list"})
	require.NoError(t, err)
	assert.Equal(t, "no warp points", out)
}

func TestExecuteParseFailuresAbortBeforeActivation(t *testing.T) {
	runner := newTestRunner(t)
	ctx := context.Background()

	_, err := runner.Execute(ctx, []string{"travel", "until", "1h", "now"})
	assert.ErrorIs(t, err, timewarp.ErrInvalidMode)

	_, err = runner.Execute(ctx, []string{"travel", "to", "someday", "now"})
	assert.ErrorIs(t, err, timewarp.ErrInvalidTarget)

	_, err = runner.Execute(ctx, []string{"travel", "by", "soonish", "now"})
	assert.ErrorIs(t, err, timewarp.ErrInvalidDelta)

	_, err = runner.Execute(ctx, []string{"frobnicate"})
	assert.Error(t, err)

	_, err = runner.Execute(ctx, nil)
	assert.Error(t, err)
}
