package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"volumeProfiler/internal/domain"
	"volumeProfiler/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.BarRepository interface using SQLite.
// It caches fetched bars locally so repeated profile builds over the same
// window do not refetch from the exchange; the profile engine itself never
// touches persistence.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/volume_profiler.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("%w: failed to ping database at '%s': %v", ports.ErrDBConnection, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits from limiting connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "Bar cache database ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS bars (
		symbol TEXT NOT NULL,
		interval TEXT NOT NULL,
		time INTEGER NOT NULL, -- unix seconds, bar open time
		open REAL NOT NULL,
		high REAL NOT NULL,
		low REAL NOT NULL,
		close REAL NOT NULL,
		volume REAL NOT NULL,
		PRIMARY KEY (symbol, interval, time)
	);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing bar cache database connection")
		return r.db.Close()
	}
	return nil
}

// UpsertBars inserts or replaces bars keyed by (symbol, interval, time).
// The batch runs in a single transaction.
func (r *Repository) UpsertBars(ctx context.Context, bars []*domain.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", ports.ErrUpdateFailed, err)
	}
	defer tx.Rollback()

	const query = `
	INSERT OR REPLACE INTO bars (symbol, interval, time, open, high, low, close, volume)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare upsert: %v", ports.ErrUpdateFailed, err)
	}
	defer stmt.Close()

	for _, bar := range bars {
		if _, err := stmt.ExecContext(ctx,
			bar.Symbol, bar.Interval, bar.Time.Unix(),
			bar.Open, bar.High, bar.Low, bar.Close, bar.Volume); err != nil {
			return fmt.Errorf("%w: failed to upsert bar for %s at %v: %v",
				ports.ErrUpdateFailed, bar.Symbol, bar.Time, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit bar upsert: %v", ports.ErrUpdateFailed, err)
	}
	return nil
}

// GetBarsRange retrieves cached bars for a symbol/interval with time in
// [start, end], ordered time-ascending.
func (r *Repository) GetBarsRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Bar, error) {
	const query = `
	SELECT time, open, high, low, close, volume
	FROM bars
	WHERE symbol = ? AND interval = ? AND time >= ? AND time <= ?
	ORDER BY time ASC`

	rows, err := r.db.QueryContext(ctx, query, symbol, interval, start.Unix(), end.Unix())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query bars for %s/%s: %v", ports.ErrQueryFailed, symbol, interval, err)
	}
	defer rows.Close()

	var bars []*domain.Bar
	for rows.Next() {
		var unixTime int64
		bar := &domain.Bar{Symbol: symbol, Interval: interval}
		if err := rows.Scan(&unixTime, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf("%w: failed to scan bar row: %v", ports.ErrQueryFailed, err)
		}
		bar.Time = time.Unix(unixTime, 0).UTC()
		bars = append(bars, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating bar rows: %v", ports.ErrQueryFailed, err)
	}
	return bars, nil
}

// CountBarsRange counts cached bars for a symbol/interval within [start, end].
func (r *Repository) CountBarsRange(ctx context.Context, symbol, interval string, start, end time.Time) (int, error) {
	const query = `
	SELECT COUNT(*) FROM bars
	WHERE symbol = ? AND interval = ? AND time >= ? AND time <= ?`

	var count int
	err := r.db.QueryRowContext(ctx, query, symbol, interval, start.Unix(), end.Unix()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count bars for %s/%s: %v", ports.ErrQueryFailed, symbol, interval, err)
	}
	return count, nil
}
