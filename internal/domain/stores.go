package domain

import (
	"context"

	"github.com/google/uuid"
)

type PlayerStore interface {
	Create(ctx context.Context, p *Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*Player, error)
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*Player, error)
}

// IntelStore persists the latest intel state per (entity, player) pair.
// Only the current state is kept; there is no history.
type IntelStore interface {
	Upsert(ctx context.Context, r *IntelRecord) error
	Get(ctx context.Context, entityID uuid.UUID, playerID uuid.UUID) (*IntelRecord, error)
	ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]IntelRecord, error)
}
