package repository

import (
	"context"
	"database/sql"
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"

	"time-warp/internal/models"
	"time-warp/internal/timeutil"
)

type dbtx interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// WarpRepository handles WarpPoint database operations
type WarpRepository struct {
	db dbtx
}

// NewWarpRepository creates a new WarpRepository
func NewWarpRepository(sqliteDB *SQLiteDB) *WarpRepository {
	return &WarpRepository{db: sqliteDB.db}
}

// Create inserts a new WarpPoint. It fails with models.ErrWarpExists when the
// id is already taken. Uniqueness is enforced by the primary key, so two
// concurrent creates of the same id race safely: exactly one wins.
func (r *WarpRepository) Create(ctx context.Context, wp *models.WarpPoint) error {
	now := timeutil.Now(ctx)
	_, err := r.db.Exec(`
		INSERT INTO warp_points (id, mode, param, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, wp.ID, int(wp.Descriptor.Mode), wp.Descriptor.Param, wp.Description, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return models.ErrWarpExists
		}
		return err
	}
	wp.CreatedAt = now
	return nil
}

// GetByID retrieves a WarpPoint by its id. It fails with models.ErrWarpNotFound
// when absent.
func (r *WarpRepository) GetByID(ctx context.Context, id string) (*models.WarpPoint, error) {
	wp := &models.WarpPoint{}
	var mode int
	err := r.db.QueryRow(`
		SELECT id, mode, param, description, created_at
		FROM warp_points
		WHERE id = ?
	`, id).Scan(&wp.ID, &mode, &wp.Descriptor.Param, &wp.Description, &wp.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrWarpNotFound
	}
	if err != nil {
		return nil, err
	}
	wp.Descriptor.Mode = models.OverrideMode(mode)
	return wp, nil
}

// Delete removes a WarpPoint by its id. It fails with models.ErrWarpNotFound
// when absent.
func (r *WarpRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(`DELETE FROM warp_points WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrWarpNotFound
	}
	return nil
}

// List retrieves all WarpPoints, oldest first.
func (r *WarpRepository) List(ctx context.Context) ([]models.WarpPoint, error) {
	rows, err := r.db.Query(`
		SELECT id, mode, param, description, created_at
		FROM warp_points
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var warps []models.WarpPoint
	for rows.Next() {
		var wp models.WarpPoint
		var mode int
		if err := rows.Scan(&wp.ID, &mode, &wp.Descriptor.Param, &wp.Description, &wp.CreatedAt); err != nil {
			return nil, err
		}
		wp.Descriptor.Mode = models.OverrideMode(mode)
		warps = append(warps, wp)
	}
	return warps, rows.Err()
}
