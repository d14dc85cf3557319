package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/Harshitk-cp/intelreport/internal/label"
	"github.com/Harshitk-cp/intelreport/internal/report"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WorldStats summarizes cache effectiveness.
type WorldStats struct {
	Entities     int   `json:"entities"`
	ReportBuilds int64 `json:"report_builds"`
	TextRenders  int64 `json:"text_renders"`
}

// GetReport returns playerID's report of the entity. For a fleet the member
// ship reports are produced first; a failure there fails the fleet.
func (s *WorldService) GetReport(ctx context.Context, entityID, playerID uuid.UUID) (report.Report, error) {
	e, err := s.get(entityID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return s.reportLocked(ctx, e, playerID)
}

// GetText returns the rendered label of the entity for playerID.
func (s *WorldService) GetText(ctx context.Context, entityID, playerID uuid.UUID, target domain.DisplayTarget, includeUnknown bool) (string, error) {
	e, err := s.get(entityID)
	if err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := s.reportLocked(ctx, e, playerID)
	if err != nil {
		return "", err
	}

	v := e.views[playerID]
	key := textKey{target: target, includeUnknown: includeUnknown}
	cache, ok := v.texts[key]
	if !ok {
		cache = label.NewTextCache(nil)
		v.texts[key] = cache
	}

	before := cache.Renders()
	text, err := cache.GetText(target, r, includeUnknown)
	if err != nil {
		s.logger.Error("label render failed",
			zap.String("entity_id", e.id.String()),
			zap.String("kind", string(e.kind)),
			zap.String("target", string(target)),
			zap.Error(err))
		return "", fmt.Errorf("render %s label: %w", e.kind, err)
	}
	s.textRenders.Add(int64(cache.Renders() - before))
	return text, nil
}

func (s *WorldService) reportLocked(ctx context.Context, e *entity, playerID uuid.UUID) (report.Report, error) {
	var ships []*report.Ship
	if e.kind == domain.KindFleet {
		ships = make([]*report.Ship, 0, len(e.members))
		for _, shipID := range e.members {
			r, err := s.GetReport(ctx, shipID, playerID)
			if err != nil {
				return nil, fmt.Errorf("fleet member %s: %w", shipID, err)
			}
			ship, ok := r.(*report.Ship)
			if !ok {
				return nil, fmt.Errorf("fleet member %s: %w", shipID, ErrWrongKind)
			}
			ships = append(ships, ship)
		}
	}

	in, err := s.intelFor(ctx, e, playerID)
	if err != nil {
		return nil, err
	}

	v := e.viewFor(playerID, s.logger)
	before := v.builds()
	r, err := v.generate(playerID, in, ships)
	if err != nil {
		return nil, err
	}
	s.reportBuilds.Add(int64(v.builds() - before))
	v.lastUsed = s.now()
	return r, nil
}

func (e *entity) viewFor(playerID uuid.UUID, logger *zap.Logger) *view {
	if v, ok := e.views[playerID]; ok {
		return v
	}
	v := &view{texts: make(map[textKey]*label.TextCache)}
	switch e.kind {
	case domain.KindStar:
		v.generate, v.builds = leafGenerator(e.star, func(playerID uuid.UUID, in intel.Intel) *report.Star {
			return report.BuildStar(e.id, playerID, in, e.star)
		}, logger)
	case domain.KindPlanet:
		v.generate, v.builds = leafGenerator(e.planet, func(playerID uuid.UUID, in intel.Intel) *report.Planet {
			return report.BuildPlanet(e.id, playerID, in, e.planet)
		}, logger)
	case domain.KindShip:
		v.generate, v.builds = leafGenerator(e.ship, func(playerID uuid.UUID, in intel.Intel) *report.Ship {
			return report.BuildShip(e.id, playerID, in, e.ship)
		}, logger)
	case domain.KindFleet:
		g := report.NewGenerator[*report.Fleet, *report.Ship](e.fleet, func(playerID uuid.UUID, in intel.Intel, ships []*report.Ship) *report.Fleet {
			return report.BuildFleet(e.id, playerID, in, e.fleet, ships)
		}, logger)
		v.generate = func(playerID uuid.UUID, in intel.Intel, ships []*report.Ship) (report.Report, error) {
			r, err := g.GetReport(playerID, in, ships)
			if err != nil {
				return nil, err
			}
			return r, nil
		}
		v.builds = g.Builds
	default:
		panic(fmt.Sprintf("service: no generator for entity kind %q", e.kind))
	}
	e.views[playerID] = v
	return v
}

func leafGenerator[R report.Report](src data.Source, build func(uuid.UUID, intel.Intel) R, logger *zap.Logger) (generateFunc, func() int) {
	g := report.NewGenerator[R, report.Report](src, func(playerID uuid.UUID, in intel.Intel, _ []report.Report) R {
		return build(playerID, in)
	}, logger)
	generate := func(playerID uuid.UUID, in intel.Intel, _ []*report.Ship) (report.Report, error) {
		r, err := g.GetReport(playerID, in, nil)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	return generate, g.Builds
}

// Sweep drops cached reports and text that no player asked for within
// maxIdle. It returns how many views were dropped.
func (s *WorldService) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.RLock()
	entities := make([]*entity, 0, len(s.entities))
	for _, e := range s.entities {
		entities = append(entities, e)
	}
	s.mu.RUnlock()

	dropped := 0
	for _, e := range entities {
		e.mu.Lock()
		for playerID, v := range e.views {
			if v.lastUsed.Before(cutoff) {
				delete(e.views, playerID)
				dropped++
			}
		}
		e.mu.Unlock()
	}
	return dropped
}

func (s *WorldService) Stats() WorldStats {
	s.mu.RLock()
	n := len(s.entities)
	s.mu.RUnlock()
	return WorldStats{
		Entities:     n,
		ReportBuilds: s.reportBuilds.Load(),
		TextRenders:  s.textRenders.Load(),
	}
}
