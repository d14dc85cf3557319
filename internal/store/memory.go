package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/google/uuid"
)

// MemoryPlayerStore keeps players in process. Used with STORE_DRIVER=memory
// and in tests.
type MemoryPlayerStore struct {
	mu      sync.RWMutex
	players map[uuid.UUID]domain.Player
}

func NewMemoryPlayerStore() *MemoryPlayerStore {
	return &MemoryPlayerStore{players: make(map[uuid.UUID]domain.Player)}
}

func (s *MemoryPlayerStore) Create(ctx context.Context, p *domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.players {
		if existing.APIKeyHash == p.APIKeyHash {
			return ErrConflict
		}
	}
	now := time.Now().UTC()
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.players[p.ID] = *p
	return nil
}

func (s *MemoryPlayerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryPlayerStore) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.players {
		if p.APIKeyHash == apiKeyHash {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

type intelKey struct {
	entityID uuid.UUID
	playerID uuid.UUID
}

type MemoryIntelStore struct {
	mu      sync.RWMutex
	records map[intelKey]domain.IntelRecord
}

func NewMemoryIntelStore() *MemoryIntelStore {
	return &MemoryIntelStore{records: make(map[intelKey]domain.IntelRecord)}
}

func (s *MemoryIntelStore) Upsert(ctx context.Context, r *domain.IntelRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := intelKey{r.EntityID, r.PlayerID}
	rec := *r
	if existing, ok := s.records[key]; ok && existing.Coverage > rec.Coverage {
		rec.Coverage = existing.Coverage
	}
	rec.UpdatedAt = time.Now().UTC()
	s.records[key] = rec
	r.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *MemoryIntelStore) Get(ctx context.Context, entityID uuid.UUID, playerID uuid.UUID) (*domain.IntelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[intelKey{entityID, playerID}]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemoryIntelStore) ListByPlayer(ctx context.Context, playerID uuid.UUID) ([]domain.IntelRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.IntelRecord
	for k, r := range s.records {
		if k.playerID == playerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}
