package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IntelStore struct {
	db *pgxpool.Pool
}

func NewIntelStore(db *pgxpool.Pool) *IntelStore {
	return &IntelStore{db: db}
}

// Upsert writes the current state of a pair. Coverage never moves down in
// storage either: a stale writer cannot lower a level another writer raised.
func (s *IntelStore) Upsert(ctx context.Context, r *domain.IntelRecord) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO intel (entity_id, player_id, fixed, coverage, coverage_rank, freshness, last_known)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (entity_id, player_id)
		 DO UPDATE SET coverage = CASE WHEN EXCLUDED.coverage_rank >= intel.coverage_rank
		                               THEN EXCLUDED.coverage ELSE intel.coverage END,
		               coverage_rank = GREATEST(EXCLUDED.coverage_rank, intel.coverage_rank),
		               freshness = EXCLUDED.freshness,
		               last_known = EXCLUDED.last_known,
		               updated_at = NOW()
		 RETURNING updated_at`,
		r.EntityID, r.PlayerID, r.Fixed, r.Coverage.String(), int(r.Coverage), string(r.Freshness), r.LastKnown,
	).Scan(&r.UpdatedAt)
}

func (s *IntelStore) Get(ctx context.Context, entityID uuid.UUID, playerID uuid.UUID) (*domain.IntelRecord, error) {
	row := s.db.QueryRow(ctx,
		`SELECT entity_id, player_id, fixed, coverage, freshness, last_known, updated_at
		 FROM intel WHERE entity_id = $1 AND player_id = $2`,
		entityID, playerID,
	)
	r, err := scanIntel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *IntelStore) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]domain.IntelRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT entity_id, player_id, fixed, coverage, freshness, last_known, updated_at
		 FROM intel WHERE player_id = $1
		 ORDER BY updated_at DESC`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.IntelRecord
	for rows.Next() {
		r, err := scanIntel(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func scanIntel(row pgx.Row) (*domain.IntelRecord, error) {
	var (
		r         domain.IntelRecord
		coverage  string
		freshness string
		lastKnown *time.Time
	)
	if err := row.Scan(&r.EntityID, &r.PlayerID, &r.Fixed, &coverage, &freshness, &lastKnown, &r.UpdatedAt); err != nil {
		return nil, err
	}
	level, err := domain.ParseCoverageLevel(coverage)
	if err != nil {
		return nil, fmt.Errorf("scan intel: %w", err)
	}
	if !domain.ValidFreshness(freshness) {
		return nil, fmt.Errorf("scan intel: unknown freshness %q", freshness)
	}
	r.Coverage = level
	r.Freshness = domain.Freshness(freshness)
	r.LastKnown = lastKnown
	return &r, nil
}
