package timeutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-warp/internal/models"
	"time-warp/internal/timewarp"
)

func TestNowReadsContextClock(t *testing.T) {
	ctx := context.Background()

	// Without an activation the facade tracks the real clock.
	before := time.Now().Add(-time.Second)
	after := time.Now().Add(time.Second)
	got := Now(ctx)
	assert.True(t, got.After(before) && got.Before(after))

	// Inside an activation it reports the travelled time.
	desc := models.OverrideDescriptor{Mode: models.ModeAbsolute, Param: 1700000000000}
	err := timewarp.Activate(ctx, desc, func(ctx context.Context) error {
		assert.Equal(t, int64(1700000000000), Now(ctx).UnixMilli())
		assert.Equal(t, "2023-11-14T22:13:20Z", Format(Now(ctx)))
		return nil
	})
	require.NoError(t, err)
}
