package service

import (
	"context"

	"time-warp/internal/models"
	"time-warp/internal/timewarp"
)

// TravelService resolves a travel request (ad-hoc tokens or a warp reference)
// into an override descriptor and runs the wrapped body under it. Resolution
// and combination failures abort before any override is installed.
type TravelService struct {
	warps DescriptorLookup
}

// NewTravelService creates a new TravelService
func NewTravelService(warps DescriptorLookup) *TravelService {
	return &TravelService{warps: warps}
}

// Run parses the mode/param tokens and executes body under the resulting
// override, combined with whatever override ctx already carries.
func (s *TravelService) Run(ctx context.Context, modeToken, paramToken string, body func(context.Context) error) error {
	desc, err := timewarp.ParseDescriptor(modeToken, paramToken)
	if err != nil {
		return err
	}
	return timewarp.Activate(ctx, desc, body)
}

// RunWarp resolves a warp id to its stored descriptor and executes body under
// it, combined with whatever override ctx already carries.
func (s *TravelService) RunWarp(ctx context.Context, id string, body func(context.Context) error) error {
	desc, err := s.warps.Lookup(ctx, id)
	if err != nil {
		return err
	}
	return timewarp.Activate(ctx, desc, body)
}

// Resolve returns the descriptor a travel request would activate, without
// running anything. Front ends use it to report the effective time.
func (s *TravelService) Resolve(ctx context.Context, modeToken, paramToken string) (models.OverrideDescriptor, error) {
	desc, err := timewarp.ParseDescriptor(modeToken, paramToken)
	if err != nil {
		return models.OverrideDescriptor{}, err
	}
	return timewarp.Effective(ctx, desc)
}

// ResolveWarp is Resolve for a warp reference.
func (s *TravelService) ResolveWarp(ctx context.Context, id string) (models.OverrideDescriptor, error) {
	desc, err := s.warps.Lookup(ctx, id)
	if err != nil {
		return models.OverrideDescriptor{}, err
	}
	return timewarp.Effective(ctx, desc)
}
