package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityKind tags which data, report and formatter family an entity uses.
type EntityKind string

const (
	KindStar   EntityKind = "star"
	KindPlanet EntityKind = "planet"
	KindShip   EntityKind = "ship"
	KindFleet  EntityKind = "fleet"
)

func AllEntityKinds() []EntityKind {
	return []EntityKind{KindStar, KindPlanet, KindShip, KindFleet}
}

func ValidEntityKind(k string) bool {
	switch EntityKind(k) {
	case KindStar, KindPlanet, KindShip, KindFleet:
		return true
	}
	return false
}

// Player is an observer. Every report is produced for exactly one player.
type Player struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	APIKeyHash string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IntelRecord is the persisted form of one (entity, player) intel.
type IntelRecord struct {
	EntityID  uuid.UUID     `json:"entity_id"`
	PlayerID  uuid.UUID     `json:"player_id"`
	Fixed     bool          `json:"fixed"`
	Coverage  CoverageLevel `json:"coverage"`
	Freshness Freshness     `json:"freshness"`
	LastKnown *time.Time    `json:"last_known,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}
