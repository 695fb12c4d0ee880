package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-warp/internal/models"
)

func openTestDB(t *testing.T, name string) (*SQLiteDB, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), name+".db")

	db, err := NewSQLiteDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())

	return db, func() { db.Close() }
}

func TestWarpRoundTrip(t *testing.T) {
	db, done := openTestDB(t, "round_trip")
	defer done()

	ctx := context.Background()
	repo := NewWarpRepository(db)

	wp := &models.WarpPoint{
		ID:         "a",
		Descriptor: models.OverrideDescriptor{Mode: models.ModeRelative, Param: 3600000},
	}
	require.NoError(t, repo.Create(ctx, wp))
	assert.False(t, wp.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, models.ModeRelative, got.Descriptor.Mode)
	assert.Equal(t, int64(3600000), got.Descriptor.Param)

	require.NoError(t, repo.Delete(ctx, "a"))

	_, err = repo.GetByID(ctx, "a")
	assert.ErrorIs(t, err, models.ErrWarpNotFound)
}

func TestWarpCreateDuplicateFails(t *testing.T) {
	db, done := openTestDB(t, "duplicate")
	defer done()

	ctx := context.Background()
	repo := NewWarpRepository(db)

	wp := &models.WarpPoint{
		ID:         "release-day",
		Descriptor: models.OverrideDescriptor{Mode: models.ModeAbsolute, Param: 1700000000000},
	}
	require.NoError(t, repo.Create(ctx, wp))

	// The duplicate is rejected by the primary key, not a pre-check, and the
	// constraint violation surfaces as the domain error.
	dup := &models.WarpPoint{
		ID:         "release-day",
		Descriptor: models.OverrideDescriptor{Mode: models.ModeRelative, Param: 1},
	}
	assert.ErrorIs(t, repo.Create(ctx, dup), models.ErrWarpExists)

	// The original record is untouched.
	got, err := repo.GetByID(ctx, "release-day")
	require.NoError(t, err)
	assert.Equal(t, models.ModeAbsolute, got.Descriptor.Mode)
	assert.Equal(t, int64(1700000000000), got.Descriptor.Param)
}

func TestWarpDeleteMissingFails(t *testing.T) {
	db, done := openTestDB(t, "delete_missing")
	defer done()

	repo := NewWarpRepository(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), "ghost"), models.ErrWarpNotFound)
}

// Any descriptor stored in the registry comes back with the same mode and
// param, and List contains exactly the ids that were created.
func TestWarpPersistenceProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("stored descriptors survive a registry round trip", prop.ForAll(
		func(seed int, mode int, param int64, description string) bool {
			dbPath := fmt.Sprintf("test_warp_persist_%d.db", seed)
			defer os.Remove(dbPath)

			db, err := NewSQLiteDB(dbPath)
			if err != nil {
				t.Logf("Failed to create database: %v", err)
				return false
			}
			defer db.Close()

			if err := db.InitSchema(); err != nil {
				t.Logf("Failed to init schema: %v", err)
				return false
			}

			ctx := context.Background()
			repo := NewWarpRepository(db)

			wp := &models.WarpPoint{
				ID:          fmt.Sprintf("warp-%d", seed),
				Descriptor:  models.OverrideDescriptor{Mode: models.OverrideMode(mode), Param: param},
				Description: description,
			}
			if err := repo.Create(ctx, wp); err != nil {
				t.Logf("Failed to create warp: %v", err)
				return false
			}

			got, err := repo.GetByID(ctx, wp.ID)
			if err != nil {
				t.Logf("Failed to get warp: %v", err)
				return false
			}
			if got.Descriptor != wp.Descriptor || got.Description != description {
				t.Logf("Round trip mismatch: got %+v want %+v", got, wp)
				return false
			}

			all, err := repo.List(ctx)
			if err != nil {
				t.Logf("Failed to list warps: %v", err)
				return false
			}
			if len(all) != 1 || all[0].ID != wp.ID {
				t.Logf("List mismatch: %+v", all)
				return false
			}

			return true
		},
		gen.IntRange(1, 100000),
		gen.IntRange(0, 1),
		gen.Int64Range(-1e15, 1e15),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
