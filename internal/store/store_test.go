package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]*Backend {
	t.Helper()
	sqlite, err := Open(context.Background(), "sqlite", "", filepath.Join(t.TempDir(), "intel.db"))
	require.NoError(t, err)
	t.Cleanup(sqlite.Close)

	return map[string]*Backend{
		"memory": NewMemoryBackend(),
		"sqlite": sqlite,
	}
}

func TestPlayerStore(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			p := &domain.Player{Name: "red", APIKeyHash: "hash-red"}
			require.NoError(t, b.Players.Create(ctx, p))
			assert.NotEqual(t, uuid.Nil, p.ID)

			found, err := b.Players.GetByAPIKeyHash(ctx, "hash-red")
			require.NoError(t, err)
			assert.Equal(t, p.ID, found.ID)
			assert.Equal(t, "red", found.Name)

			byID, err := b.Players.GetByID(ctx, p.ID)
			require.NoError(t, err)
			assert.Equal(t, "hash-red", byID.APIKeyHash)

			_, err = b.Players.GetByAPIKeyHash(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = b.Players.GetByID(ctx, uuid.New())
			assert.ErrorIs(t, err, ErrNotFound)

			err = b.Players.Create(ctx, &domain.Player{Name: "dup", APIKeyHash: "hash-red"})
			assert.ErrorIs(t, err, ErrConflict)
		})
	}
}

func TestIntelStore(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			player := &domain.Player{Name: "red", APIKeyHash: "hash-" + name}
			require.NoError(t, b.Players.Create(ctx, player))
			entityID := uuid.New()

			_, err := b.Intel.Get(ctx, entityID, player.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			rec := &domain.IntelRecord{
				EntityID:  entityID,
				PlayerID:  player.ID,
				Coverage:  domain.CoverageEssential,
				Freshness: domain.FreshnessCurrent,
			}
			require.NoError(t, b.Intel.Upsert(ctx, rec))
			assert.False(t, rec.UpdatedAt.IsZero())

			got, err := b.Intel.Get(ctx, entityID, player.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.CoverageEssential, got.Coverage)
			assert.Equal(t, domain.FreshnessCurrent, got.Freshness)
			assert.Nil(t, got.LastKnown)

			lost := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
			require.NoError(t, b.Intel.Upsert(ctx, &domain.IntelRecord{
				EntityID:  entityID,
				PlayerID:  player.ID,
				Coverage:  domain.CoverageBasic,
				Freshness: domain.FreshnessStale,
				LastKnown: &lost,
			}))

			got, err = b.Intel.Get(ctx, entityID, player.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.CoverageEssential, got.Coverage, "stored coverage never decreases")
			assert.Equal(t, domain.FreshnessStale, got.Freshness)
			require.NotNil(t, got.LastKnown)
			assert.True(t, lost.Equal(*got.LastKnown))

			list, err := b.Intel.ListByPlayer(ctx, player.ID)
			require.NoError(t, err)
			assert.Len(t, list, 1)

			list, err = b.Intel.ListByPlayer(ctx, uuid.New())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mongo", "", "")
	assert.Error(t, err)

	_, err = Open(context.Background(), "postgres", "", "")
	assert.Error(t, err)
}
