package service

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/intel"
	"github.com/Harshitk-cp/intelreport/internal/label"
	"github.com/Harshitk-cp/intelreport/internal/report"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEntityNotFound  = errors.New("entity not found")
	ErrEntityExists    = errors.New("entity already exists")
	ErrWrongKind       = errors.New("entity is of a different kind")
	ErrInvalidCoverage = errors.New("invalid coverage level")
	ErrShipInFleet     = errors.New("ship already belongs to a fleet")
	ErrShipNotInFleet  = errors.New("ship is not in this fleet")
)

// WorldService owns every entity's data, the intel each player holds about
// it, and the per-player report and label caches.
//
// Each entity has its own lock; all report and text generation for an
// entity runs under it. A fleet locks itself before its member ships, never
// the other way round.
type WorldService struct {
	intelStore domain.IntelStore
	logger     *zap.Logger
	now        func() time.Time

	mu       sync.RWMutex
	entities map[uuid.UUID]*entity

	reportBuilds atomic.Int64
	textRenders  atomic.Int64
}

type entity struct {
	mu   sync.Mutex
	id   uuid.UUID
	kind domain.EntityKind

	// landmark is the fixed coverage every player has of this entity.
	landmark *domain.CoverageLevel

	star   *data.Star
	planet *data.Planet
	ship   *data.Ship
	fleet  *data.Fleet

	members []uuid.UUID
	fleetID uuid.UUID

	intel map[uuid.UUID]intel.Intel
	views map[uuid.UUID]*view
}

type generateFunc func(playerID uuid.UUID, in intel.Intel, ships []*report.Ship) (report.Report, error)

// view is one player's cached report and label text of one entity.
type view struct {
	generate generateFunc
	builds   func() int
	texts    map[textKey]*label.TextCache
	lastUsed time.Time
}

type textKey struct {
	target         domain.DisplayTarget
	includeUnknown bool
}

func NewWorldService(intelStore domain.IntelStore, logger *zap.Logger) *WorldService {
	return &WorldService{
		intelStore: intelStore,
		logger:     logger,
		now:        time.Now,
		entities:   make(map[uuid.UUID]*entity),
	}
}

type StarSpec struct {
	ID       uuid.UUID
	Name     string
	Category string
	// Landmark, when set, gives every player fixed coverage of the star.
	Landmark *domain.CoverageLevel
}

type PlanetSpec struct {
	ID        uuid.UUID
	Name      string
	Owner     string
	Capacity  int
	Resources int
	Health    float64
}

type ShipSpec struct {
	ID       uuid.UUID
	Name     string
	Owner    string
	Category string
	Strength int
	Health   float64
	Speed    float64
}

type FleetSpec struct {
	ID    uuid.UUID
	Name  string
	Owner string
	Speed float64
	Ships []uuid.UUID
}

func (s *WorldService) AddStar(spec StarSpec) (uuid.UUID, error) {
	if spec.Landmark != nil && !domain.ValidCoverageLevel(*spec.Landmark) {
		return uuid.Nil, ErrInvalidCoverage
	}
	e := newEntity(spec.ID, domain.KindStar)
	e.star = data.NewStar(spec.Name, spec.Category)
	e.landmark = spec.Landmark
	return e.id, s.add(e)
}

func (s *WorldService) AddPlanet(spec PlanetSpec) (uuid.UUID, error) {
	e := newEntity(spec.ID, domain.KindPlanet)
	p := data.NewPlanet(spec.Name)
	p.SetOwner(spec.Owner)
	p.SetCapacity(spec.Capacity)
	p.SetResources(spec.Resources)
	if spec.Health > 0 {
		p.SetHealth(spec.Health)
	}
	e.planet = p
	return e.id, s.add(e)
}

func (s *WorldService) AddShip(spec ShipSpec) (uuid.UUID, error) {
	e := newEntity(spec.ID, domain.KindShip)
	sh := data.NewShip(spec.Name, spec.Owner, spec.Category)
	sh.SetStrength(spec.Strength)
	sh.SetSpeed(spec.Speed)
	if spec.Health > 0 {
		sh.SetHealth(spec.Health)
	}
	e.ship = sh
	return e.id, s.add(e)
}

// AddFleet creates the fleet and assigns spec.Ships to it in order. Either
// the fleet is created with every member or nothing changes.
func (s *WorldService) AddFleet(spec FleetSpec) (uuid.UUID, error) {
	if err := s.checkMembers(spec.Ships); err != nil {
		return uuid.Nil, err
	}

	e := newEntity(spec.ID, domain.KindFleet)
	f := data.NewFleet(spec.Name, spec.Owner)
	f.SetSpeed(spec.Speed)
	e.fleet = f
	if err := s.add(e); err != nil {
		return uuid.Nil, err
	}

	// A concurrent AssignShip can still take a member after the check.
	for i, shipID := range spec.Ships {
		if err := s.AssignShip(e.id, shipID); err != nil {
			s.discardFleet(e.id, spec.Ships[:i])
			return uuid.Nil, fmt.Errorf("assign ship %s: %w", shipID, err)
		}
	}
	return e.id, nil
}

// checkMembers verifies that every id is a distinct ship outside any fleet.
func (s *WorldService) checkMembers(ships []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ships))
	for _, shipID := range ships {
		if _, dup := seen[shipID]; dup {
			return fmt.Errorf("assign ship %s: %w", shipID, ErrShipInFleet)
		}
		seen[shipID] = struct{}{}

		sh, err := s.lookup(shipID, domain.KindShip)
		if err != nil {
			return fmt.Errorf("assign ship %s: %w", shipID, err)
		}
		sh.mu.Lock()
		inFleet := sh.fleetID != uuid.Nil
		sh.mu.Unlock()
		if inFleet {
			return fmt.Errorf("assign ship %s: %w", shipID, ErrShipInFleet)
		}
	}
	return nil
}

// discardFleet releases the ships already assigned and removes the fleet.
func (s *WorldService) discardFleet(fleetID uuid.UUID, assigned []uuid.UUID) {
	for _, shipID := range assigned {
		if err := s.RemoveShip(fleetID, shipID); err != nil {
			s.logger.Error("failed to release ship from discarded fleet",
				zap.String("fleet_id", fleetID.String()),
				zap.String("ship_id", shipID.String()),
				zap.Error(err))
		}
	}
	s.mu.Lock()
	delete(s.entities, fleetID)
	s.mu.Unlock()
}

func newEntity(id uuid.UUID, kind domain.EntityKind) *entity {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &entity{
		id:    id,
		kind:  kind,
		intel: make(map[uuid.UUID]intel.Intel),
		views: make(map[uuid.UUID]*view),
	}
}

func (s *WorldService) add(e *entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entities[e.id]; exists {
		return ErrEntityExists
	}
	s.entities[e.id] = e
	s.logger.Info("entity added", zap.String("entity_id", e.id.String()), zap.String("kind", string(e.kind)))
	return nil
}

func (s *WorldService) get(id uuid.UUID) (*entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[id]
	if !ok {
		return nil, ErrEntityNotFound
	}
	return e, nil
}

func (s *WorldService) lookup(id uuid.UUID, kind domain.EntityKind) (*entity, error) {
	e, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if e.kind != kind {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrWrongKind, id, e.kind, kind)
	}
	return e, nil
}

// Kind returns the kind of an entity.
func (s *WorldService) Kind(id uuid.UUID) (domain.EntityKind, error) {
	e, err := s.get(id)
	if err != nil {
		return "", err
	}
	return e.kind, nil
}

// AssignShip adds a ship to the end of a fleet. A ship is in at most one fleet.
func (s *WorldService) AssignShip(fleetID, shipID uuid.UUID) error {
	f, err := s.lookup(fleetID, domain.KindFleet)
	if err != nil {
		return err
	}
	sh, err := s.lookup(shipID, domain.KindShip)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.fleetID != uuid.Nil {
		return ErrShipInFleet
	}
	sh.fleetID = fleetID
	f.members = append(f.members, shipID)
	return nil
}

func (s *WorldService) RemoveShip(fleetID, shipID uuid.UUID) error {
	f, err := s.lookup(fleetID, domain.KindFleet)
	if err != nil {
		return err
	}
	sh, err := s.lookup(shipID, domain.KindShip)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if sh.fleetID != fleetID {
		return ErrShipNotInFleet
	}
	for i, id := range f.members {
		if id == shipID {
			f.members = append(f.members[:i:i], f.members[i+1:]...)
			break
		}
	}
	sh.fleetID = uuid.Nil
	return nil
}

func (s *WorldService) UpdateStar(id uuid.UUID, fn func(*data.Star)) error {
	e, err := s.lookup(id, domain.KindStar)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.star)
	return nil
}

func (s *WorldService) UpdatePlanet(id uuid.UUID, fn func(*data.Planet)) error {
	e, err := s.lookup(id, domain.KindPlanet)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.planet)
	return nil
}

func (s *WorldService) UpdateShip(id uuid.UUID, fn func(*data.Ship)) error {
	e, err := s.lookup(id, domain.KindShip)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.ship)
	return nil
}

func (s *WorldService) UpdateFleet(id uuid.UUID, fn func(*data.Fleet)) error {
	e, err := s.lookup(id, domain.KindFleet)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.fleet)
	return nil
}
