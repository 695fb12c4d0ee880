package timeutil

import (
	"context"
	"time"

	"time-warp/internal/timewarp"
)

// Instant is the wire format for timestamps reported to users.
const Instant = time.RFC3339

// Now returns the current time as seen by the operation running under ctx:
// the travelled time inside an activation, the real time otherwise. All
// application code reads the clock through this facade.
func Now(ctx context.Context) time.Time {
	return timewarp.FromContext(ctx).Now()
}

// Format renders a timestamp for user-facing output.
func Format(t time.Time) string {
	return t.UTC().Format(Instant)
}
