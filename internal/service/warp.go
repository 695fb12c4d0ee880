package service

import (
	"context"
	"fmt"
	"strings"

	"time-warp/internal/models"
	"time-warp/internal/timewarp"
)

// WarpService manages named warp points. Mode and parameter tokens are
// validated by parsing before anything is persisted, so the registry never
// holds a descriptor that did not parse.
type WarpService struct {
	registry WarpRegistry
}

// NewWarpService creates a new WarpService
func NewWarpService(registry WarpRegistry) *WarpService {
	return &WarpService{registry: registry}
}

// Create parses the mode/param tokens and stores them under id.
func (s *WarpService) Create(ctx context.Context, id, modeToken, paramToken, description string) (*models.WarpPoint, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("warp id must not be empty")
	}

	desc, err := timewarp.ParseDescriptor(modeToken, paramToken)
	if err != nil {
		return nil, err
	}

	wp := &models.WarpPoint{
		ID:          id,
		Descriptor:  desc,
		Description: description,
	}
	if err := s.registry.Create(ctx, wp); err != nil {
		return nil, err
	}
	return wp, nil
}

// Delete removes the warp point with the given id.
func (s *WarpService) Delete(ctx context.Context, id string) error {
	return s.registry.Delete(ctx, id)
}

// List returns all warp points.
func (s *WarpService) List(ctx context.Context) ([]models.WarpPoint, error) {
	return s.registry.List(ctx)
}

// Lookup resolves a warp id to its descriptor.
func (s *WarpService) Lookup(ctx context.Context, id string) (models.OverrideDescriptor, error) {
	wp, err := s.registry.GetByID(ctx, id)
	if err != nil {
		return models.OverrideDescriptor{}, err
	}
	return wp.Descriptor, nil
}
