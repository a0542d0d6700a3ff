// Package store archives drawing runs: the encoded command stream together
// with the preset and seed that produced it.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"github.com/chazu/sprig/command"

	_ "modernc.org/sqlite"
)

// ErrRunNotFound indicates the requested run doesn't exist.
var ErrRunNotFound = errors.New("run not found")

// Supported database/sql driver names.
const (
	DriverSQLite = "sqlite"
	DriverDuckDB = "duckdb"
)

func driverAvailable(name string) bool {
	for _, d := range sql.Drivers() {
		if d == name && (name == DriverSQLite || name == DriverDuckDB) {
			return true
		}
	}
	return false
}

func logger() commonlog.Logger {
	return commonlog.GetLogger("sprig.store")
}

// Run is one archived drawing pass.
type Run struct {
	ID         string
	Preset     string
	PresetHash [32]byte
	Seed       uint64
	HasSeed    bool
	Replay     string
	Commands   int
	CreatedAt  time.Time
	Stream     []byte // canonical CBOR, see command.MarshalCBOR
}

// Decode returns the run's command stream.
func (r *Run) Decode() ([]command.Command, error) {
	return command.UnmarshalCBOR(r.Stream)
}

// RunSummary is a Run without its stream.
type RunSummary struct {
	ID        string
	Preset    string
	Seed      uint64
	HasSeed   bool
	Replay    string
	Commands  int
	CreatedAt time.Time
}

// Store is a SQL-backed run archive.
type Store struct {
	db     *sql.DB
	driver string
	owned  bool
}

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	preset      TEXT NOT NULL,
	preset_hash BLOB NOT NULL,
	seed        BIGINT NOT NULL,
	has_seed    BOOLEAN NOT NULL,
	replay      TEXT NOT NULL,
	commands    INTEGER NOT NULL,
	created_at  BIGINT NOT NULL,
	stream      BLOB NOT NULL
)`

// Open opens (creating if needed) an archive using driver and dsn.
func Open(driver, dsn string) (*Store, error) {
	if !driverAvailable(driver) {
		return nil, fmt.Errorf("store: unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}
	if driver == DriverSQLite {
		if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: setting busy timeout: %w", err)
		}
	}
	s, err := New(db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New wraps an already open database. Close does not close db.
func New(db *sql.DB, driver string) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("store: creating table: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

// Close closes the database if Open created it.
func (s *Store) Close() error {
	if s.owned && s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save inserts r, assigning an ID and creation time if they are unset.
func (s *Store) Save(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, preset, preset_hash, seed, has_seed, replay, commands, created_at, stream)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Preset, r.PresetHash[:], int64(r.Seed), r.HasSeed, r.Replay, r.Commands,
		r.CreatedAt.UnixNano(), r.Stream)
	if err != nil {
		return fmt.Errorf("store: saving run %s: %w", r.ID, err)
	}
	logger().Debugf("saved run %s (%s, %d commands, %d bytes)", r.ID, r.Preset, r.Commands, len(r.Stream))
	return nil
}

// Get loads the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, preset, preset_hash, seed, has_seed, replay, commands, created_at, stream
		 FROM runs WHERE id = ?`, id)

	var (
		r       Run
		hash    []byte
		seed    int64
		created int64
	)
	err := row.Scan(&r.ID, &r.Preset, &hash, &seed, &r.HasSeed, &r.Replay, &r.Commands, &created, &r.Stream)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("store: %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("store: loading run %s: %w", id, err)
	}
	copy(r.PresetHash[:], hash)
	r.Seed = uint64(seed)
	r.CreatedAt = time.Unix(0, created).UTC()
	return &r, nil
}

// List returns summaries of all runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, preset, seed, has_seed, replay, commands, created_at
		 FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("store: listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r       RunSummary
			seed    int64
			created int64
		)
		if err := rows.Scan(&r.ID, &r.Preset, &seed, &r.HasSeed, &r.Replay, &r.Commands, &created); err != nil {
			return nil, fmt.Errorf("store: scanning run: %w", err)
		}
		r.Seed = uint64(seed)
		r.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Delete removes the run with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: deleting run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: deleting run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("store: %s: %w", id, ErrRunNotFound)
	}
	return nil
}
