package store

import (
	"context"
	"errors"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlayerStore struct {
	db *pgxpool.Pool
}

func NewPlayerStore(db *pgxpool.Pool) *PlayerStore {
	return &PlayerStore{db: db}
}

func (s *PlayerStore) Create(ctx context.Context, p *domain.Player) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO players (name, api_key_hash) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.APIKeyHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (s *PlayerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	return s.getOne(ctx,
		`SELECT id, name, api_key_hash, created_at, updated_at
		 FROM players WHERE id = $1`, id)
}

func (s *PlayerStore) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Player, error) {
	return s.getOne(ctx,
		`SELECT id, name, api_key_hash, created_at, updated_at
		 FROM players WHERE api_key_hash = $1`, apiKeyHash)
}

func (s *PlayerStore) getOne(ctx context.Context, query string, arg any) (*domain.Player, error) {
	p := &domain.Player{}
	err := s.db.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Name, &p.APIKeyHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
