package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB is the embedded backend for single-node deployments.
type SQLiteDB struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and migrates it.
func OpenSQLite(path string) (*SQLiteDB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	d := &SQLiteDB{db: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return d, nil
}

func (d *SQLiteDB) Close() error {
	return d.db.Close()
}

func (d *SQLiteDB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *SQLiteDB) migrate() error {
	_, err := d.db.Exec(`
CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    api_key_hash TEXT NOT NULL UNIQUE,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS intel (
    entity_id TEXT NOT NULL,
    player_id TEXT NOT NULL,
    fixed INTEGER NOT NULL DEFAULT 0,
    coverage INTEGER NOT NULL,
    freshness TEXT NOT NULL,
    last_known INTEGER,
    updated_at INTEGER NOT NULL,
    PRIMARY KEY (entity_id, player_id),
    FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_intel_player ON intel (player_id, updated_at);
`)
	return err
}

type SQLitePlayerStore struct {
	db *sql.DB
}

func NewSQLitePlayerStore(d *SQLiteDB) *SQLitePlayerStore {
	return &SQLitePlayerStore{db: d.db}
}

func (s *SQLitePlayerStore) Create(ctx context.Context, p *domain.Player) error {
	now := time.Now().UTC()
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, api_key_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id.String(), p.Name, p.APIKeyHash, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrConflict
		}
		return err
	}
	p.ID = id
	p.CreatedAt = now.Truncate(time.Millisecond)
	p.UpdatedAt = p.CreatedAt
	return nil
}

func (s *SQLitePlayerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	return s.getOne(ctx, `SELECT id, name, api_key_hash, created_at, updated_at FROM players WHERE id = ?`, id.String())
}

func (s *SQLitePlayerStore) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Player, error) {
	return s.getOne(ctx, `SELECT id, name, api_key_hash, created_at, updated_at FROM players WHERE api_key_hash = ?`, apiKeyHash)
}

func (s *SQLitePlayerStore) getOne(ctx context.Context, query string, arg any) (*domain.Player, error) {
	var (
		p                    domain.Player
		id                   string
		createdAt, updatedAt int64
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&id, &p.Name, &p.APIKeyHash, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}
	p.CreatedAt = time.UnixMilli(createdAt).UTC()
	p.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &p, nil
}

type SQLiteIntelStore struct {
	db *sql.DB
}

func NewSQLiteIntelStore(d *SQLiteDB) *SQLiteIntelStore {
	return &SQLiteIntelStore{db: d.db}
}

func (s *SQLiteIntelStore) Upsert(ctx context.Context, r *domain.IntelRecord) error {
	now := time.Now().UTC()
	var lastKnown sql.NullInt64
	if r.LastKnown != nil {
		lastKnown = sql.NullInt64{Int64: r.LastKnown.UnixMilli(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO intel (entity_id, player_id, fixed, coverage, freshness, last_known, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (entity_id, player_id)
		 DO UPDATE SET coverage = MAX(excluded.coverage, intel.coverage),
		               freshness = excluded.freshness,
		               last_known = excluded.last_known,
		               updated_at = excluded.updated_at`,
		r.EntityID.String(), r.PlayerID.String(), r.Fixed, int(r.Coverage), string(r.Freshness), lastKnown, now.UnixMilli(),
	)
	if err != nil {
		return err
	}
	r.UpdatedAt = now.Truncate(time.Millisecond)
	return nil
}

func (s *SQLiteIntelStore) Get(ctx context.Context, entityID uuid.UUID, playerID uuid.UUID) (*domain.IntelRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT entity_id, player_id, fixed, coverage, freshness, last_known, updated_at
		 FROM intel WHERE entity_id = ? AND player_id = ?`,
		entityID.String(), playerID.String(),
	)
	r, err := scanSQLiteIntel(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *SQLiteIntelStore) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]domain.IntelRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_id, player_id, fixed, coverage, freshness, last_known, updated_at
		 FROM intel WHERE player_id = ?
		 ORDER BY updated_at DESC`,
		playerID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.IntelRecord
	for rows.Next() {
		r, err := scanSQLiteIntel(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteIntel(row rowScanner) (*domain.IntelRecord, error) {
	var (
		r                  domain.IntelRecord
		entityID, playerID string
		coverage           int
		freshness          string
		lastKnown          sql.NullInt64
		updatedAt          int64
	)
	if err := row.Scan(&entityID, &playerID, &r.Fixed, &coverage, &freshness, &lastKnown, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if r.EntityID, err = uuid.Parse(entityID); err != nil {
		return nil, fmt.Errorf("scan intel: %w", err)
	}
	if r.PlayerID, err = uuid.Parse(playerID); err != nil {
		return nil, fmt.Errorf("scan intel: %w", err)
	}
	r.Coverage = domain.CoverageLevel(coverage)
	if !domain.ValidCoverageLevel(r.Coverage) {
		return nil, fmt.Errorf("scan intel: invalid coverage %d", coverage)
	}
	if !domain.ValidFreshness(freshness) {
		return nil, fmt.Errorf("scan intel: unknown freshness %q", freshness)
	}
	r.Freshness = domain.Freshness(freshness)
	if lastKnown.Valid {
		t := time.UnixMilli(lastKnown.Int64).UTC()
		r.LastKnown = &t
	}
	r.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &r, nil
}
