package timewarp

import (
	"context"

	"time-warp/internal/models"
)

type overrideCtxKey struct{}

// activation is the per-scope state carried by the context: the effective
// descriptor and the clock computed from it.
type activation struct {
	desc  models.OverrideDescriptor
	clock Clock
}

// WithOverride returns a context carrying desc as the active override. The
// override is visible to everything called with the returned context and to
// nothing else; the parent context is untouched, so dropping the returned
// context restores the caller's view.
func WithOverride(ctx context.Context, desc models.OverrideDescriptor) context.Context {
	return context.WithValue(ctx, overrideCtxKey{}, activation{desc: desc, clock: clockFor(desc)})
}

// Active returns the override active in the caller's current scope, if any.
func Active(ctx context.Context) (models.OverrideDescriptor, bool) {
	if a, ok := ctx.Value(overrideCtxKey{}).(activation); ok {
		return a.desc, true
	}
	return models.OverrideDescriptor{}, false
}

// FromContext returns the Clock installed in ctx, or the real clock when no
// override is active.
func FromContext(ctx context.Context) Clock {
	if a, ok := ctx.Value(overrideCtxKey{}).(activation); ok {
		return a.clock
	}
	return RealClock{}
}
