package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/Harshitk-cp/intelreport/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Detect records that playerID currently detects the entity at level. The
// intel becomes current and its coverage rises if level is higher. It
// reports whether coverage changed; lower levels and fixed intel are
// accepted as no-ops.
func (s *WorldService) Detect(ctx context.Context, entityID, playerID uuid.UUID, level domain.CoverageLevel) (bool, error) {
	if !domain.ValidCoverageLevel(level) {
		return false, ErrInvalidCoverage
	}
	e, err := s.get(entityID)
	if err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	in, err := s.intelFor(ctx, e, playerID)
	if err != nil {
		return false, err
	}
	if in.IsFixed() {
		return false, nil
	}

	wasCurrent := in.Freshness() == domain.FreshnessCurrent
	in.MarkCurrent()
	raised := in.TrySetCoverage(level)
	if !raised && wasCurrent {
		return false, nil
	}

	if err := s.persist(ctx, e.id, playerID, in); err != nil {
		s.forgetIntel(e, playerID)
		return false, err
	}
	s.logger.Debug("detection recorded",
		zap.String("entity_id", e.id.String()),
		zap.String("player_id", playerID.String()),
		zap.String("coverage", in.CurrentCoverage().String()),
		zap.Bool("raised", raised),
	)
	return raised, nil
}

// LoseDetection marks the player's intel stale as of at. Coverage is kept.
func (s *WorldService) LoseDetection(ctx context.Context, entityID, playerID uuid.UUID, at time.Time) error {
	e, err := s.get(entityID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	in, err := s.intelFor(ctx, e, playerID)
	if err != nil {
		return err
	}
	if in.IsFixed() || in.Freshness() != domain.FreshnessCurrent {
		return nil
	}

	in.MarkStale(at)
	if err := s.persist(ctx, e.id, playerID, in); err != nil {
		s.forgetIntel(e, playerID)
		return err
	}
	s.logger.Debug("detection lost",
		zap.String("entity_id", e.id.String()),
		zap.String("player_id", playerID.String()),
		zap.Time("last_known", at),
	)
	return nil
}

// IntelState returns a copy of what playerID knows about the entity.
func (s *WorldService) IntelState(ctx context.Context, entityID, playerID uuid.UUID) (*domain.IntelRecord, error) {
	e, err := s.get(entityID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	in, err := s.intelFor(ctx, e, playerID)
	if err != nil {
		return nil, err
	}
	return intel.ToRecord(in, e.id, playerID), nil
}

// KnownIntel lists every entity playerID holds intel on: persisted
// detections first, then landmarks ordered by id.
func (s *WorldService) KnownIntel(ctx context.Context, playerID uuid.UUID) ([]domain.IntelRecord, error) {
	recs, err := s.intelStore.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list intel: %w", err)
	}

	var landmarks []domain.IntelRecord
	s.mu.RLock()
	for _, e := range s.entities {
		if e.landmark == nil {
			continue
		}
		landmarks = append(landmarks, domain.IntelRecord{
			EntityID:  e.id,
			PlayerID:  playerID,
			Fixed:     true,
			Coverage:  *e.landmark,
			Freshness: domain.FreshnessCurrent,
		})
	}
	s.mu.RUnlock()

	sort.Slice(landmarks, func(i, j int) bool {
		return landmarks[i].EntityID.String() < landmarks[j].EntityID.String()
	})
	return append(recs, landmarks...), nil
}

// intelFor returns the pair's intel, loading it from the store on first
// use. The caller holds e.mu.
func (s *WorldService) intelFor(ctx context.Context, e *entity, playerID uuid.UUID) (intel.Intel, error) {
	if in, ok := e.intel[playerID]; ok {
		return in, nil
	}

	var in intel.Intel
	if e.landmark != nil {
		in = intel.NewFixed(*e.landmark)
	} else {
		rec, err := s.intelStore.Get(ctx, e.id, playerID)
		switch {
		case err == nil:
			in = intel.FromRecord(rec)
		case errors.Is(err, store.ErrNotFound):
			in = intel.NewImproving(domain.CoverageNone)
		default:
			return nil, fmt.Errorf("load intel: %w", err)
		}
	}
	e.intel[playerID] = in
	return in, nil
}

// forgetIntel drops the pair's intel after a failed write, so memory never
// runs ahead of the store. The next use reloads it. The caller holds e.mu.
func (s *WorldService) forgetIntel(e *entity, playerID uuid.UUID) {
	delete(e.intel, playerID)
}

func (s *WorldService) persist(ctx context.Context, entityID, playerID uuid.UUID, in intel.Intel) error {
	if err := s.intelStore.Upsert(ctx, intel.ToRecord(in, entityID, playerID)); err != nil {
		s.logger.Error("failed to persist intel",
			zap.String("entity_id", entityID.String()),
			zap.String("player_id", playerID.String()),
			zap.Error(err))
		return fmt.Errorf("persist intel: %w", err)
	}
	return nil
}
