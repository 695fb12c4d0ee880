package service

import (
	"context"

	"time-warp/internal/models"
)

// WarpRegistry is the keyed store of named warp points, backing the operator
// create/delete/list commands.
type WarpRegistry interface {
	Create(ctx context.Context, wp *models.WarpPoint) error
	GetByID(ctx context.Context, id string) (*models.WarpPoint, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.WarpPoint, error)
}

// DescriptorLookup resolves a warp id to its stored descriptor. It is the
// only registry capability the travel path consumes.
type DescriptorLookup interface {
	Lookup(ctx context.Context, id string) (models.OverrideDescriptor, error)
}
