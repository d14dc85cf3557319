// Package report builds immutable, coverage-filtered snapshots of entity
// data for one player, and caches them per entity.
package report

import (
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/google/uuid"
)

// Report is an immutable snapshot of one entity as seen by one player.
// Reports are compared by identity: a regenerated report is a new pointer.
type Report interface {
	Kind() domain.EntityKind
	EntityID() uuid.UUID
	PlayerID() uuid.UUID
	// Coverage is the player's coverage at the time the report was built.
	Coverage() domain.CoverageLevel
}

type header struct {
	entityID uuid.UUID
	playerID uuid.UUID
	coverage domain.CoverageLevel
}

func (h header) EntityID() uuid.UUID            { return h.entityID }
func (h header) PlayerID() uuid.UUID            { return h.playerID }
func (h header) Coverage() domain.CoverageLevel { return h.coverage }

type headerJSON struct {
	Kind     domain.EntityKind    `json:"kind,omitempty"`
	EntityID uuid.UUID            `json:"entity_id"`
	PlayerID uuid.UUID            `json:"player_id"`
	Coverage domain.CoverageLevel `json:"coverage"`
}

// json encodes the header. An entity the player is not even aware of does
// not reveal its kind.
func (h header) json(kind domain.EntityKind) headerJSON {
	j := headerJSON{EntityID: h.entityID, PlayerID: h.playerID, Coverage: h.coverage}
	if h.coverage.AtLeast(domain.CoverageAware) {
		j.Kind = kind
	}
	return j
}
