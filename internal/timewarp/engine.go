// Package timewarp implements the temporal override engine: descriptors for
// altering "now", the algebra for nesting them, and context-scoped activation
// so that concurrent operations never see each other's override.
package timewarp

import (
	"context"

	"time-warp/internal/models"
)

// Activate establishes desc as the active override for the dynamic extent of
// body. The requested descriptor is first combined with any override already
// active in ctx (see Combine); a combination failure aborts before anything is
// installed. body receives a derived context carrying the combined override,
// and the caller's view is restored on every exit path (normal return, error
// or cancellation) because the override lives only in the derived context.
func Activate(ctx context.Context, desc models.OverrideDescriptor, body func(context.Context) error) error {
	effective, err := Effective(ctx, desc)
	if err != nil {
		return err
	}
	return body(WithOverride(ctx, effective))
}

// Effective computes the override that would become active if desc were
// activated in ctx, without activating it.
func Effective(ctx context.Context, desc models.OverrideDescriptor) (models.OverrideDescriptor, error) {
	var outer *models.OverrideDescriptor
	if active, ok := Active(ctx); ok {
		outer = &active
	}
	return Combine(outer, desc)
}
