package repository

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB wraps the database connection
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection with connection pool settings
func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite benefits from limited connections due to write locking
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// InitSchema creates the database tables and runs migrations
func (s *SQLiteDB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS warp_points (
		id TEXT PRIMARY KEY,
		mode INTEGER NOT NULL,
		param INTEGER NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_warp_points_created ON warp_points(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	return s.runMigrations()
}

// runMigrations executes pending database migrations
func (s *SQLiteDB) runMigrations() error {
	// Probe for the description column; older registries predate it.
	var probe string
	err := s.db.QueryRow("SELECT description FROM warp_points LIMIT 1").Scan(&probe)
	if err != nil && err != sql.ErrNoRows {
		return s.migrateDescription()
	}
	return nil
}

// migrateDescription adds the description column to warp_points
func (s *SQLiteDB) migrateDescription() error {
	_, err := s.db.Exec(`ALTER TABLE warp_points ADD COLUMN description TEXT NOT NULL DEFAULT ''`)
	return err
}
