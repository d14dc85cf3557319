package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Harshitk-cp/intelreport/internal/data"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/service"
	"github.com/Harshitk-cp/intelreport/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SimHandler receives signals from the game simulation: detections and
// changes to entity data.
type SimHandler struct {
	world   *service.WorldService
	players domain.PlayerStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewSimHandler(world *service.WorldService, players domain.PlayerStore, logger *zap.Logger) *SimHandler {
	return &SimHandler{world: world, players: players, logger: logger, now: time.Now}
}

type detectionRequest struct {
	PlayerID uuid.UUID            `json:"player_id"`
	Coverage domain.CoverageLevel `json:"coverage"`
}

type detectionResponse struct {
	Raised bool                `json:"raised"`
	Intel  *domain.IntelRecord `json:"intel"`
}

type lostRequest struct {
	PlayerID uuid.UUID  `json:"player_id"`
	At       *time.Time `json:"at,omitempty"`
}

// entityUpdateRequest carries the fields to change. A field the entity's
// kind does not have is rejected.
type entityUpdateRequest struct {
	Name      *string  `json:"name"`
	Owner     *string  `json:"owner"`
	Category  *string  `json:"category"`
	Capacity  *int     `json:"capacity"`
	Resources *int     `json:"resources"`
	Health    *float64 `json:"health"`
	Strength  *int     `json:"strength"`
	Speed     *float64 `json:"speed"`
}

type fleetMemberRequest struct {
	ShipID uuid.UUID `json:"ship_id"`
}

var errFieldNotApplicable = errors.New("field does not apply to this entity kind")

func (h *SimHandler) Detect(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid entity id")
		return
	}

	var req detectionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.knownPlayer(w, r, req.PlayerID) {
		return
	}

	raised, err := h.world.Detect(r.Context(), id, req.PlayerID, req.Coverage)
	if err != nil {
		writeServiceError(w, err, "failed to record detection")
		return
	}

	rec, err := h.world.IntelState(r.Context(), id, req.PlayerID)
	if err != nil {
		writeServiceError(w, err, "failed to record detection")
		return
	}

	writeJSON(w, http.StatusOK, detectionResponse{Raised: raised, Intel: rec})
}

// Lost marks detection lost. at defaults to now.
func (h *SimHandler) Lost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid entity id")
		return
	}

	var req lostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !h.knownPlayer(w, r, req.PlayerID) {
		return
	}

	at := h.now().UTC()
	if req.At != nil {
		at = *req.At
	}

	if err := h.world.LoseDetection(r.Context(), id, req.PlayerID, at); err != nil {
		writeServiceError(w, err, "failed to record lost detection")
		return
	}

	rec, err := h.world.IntelState(r.Context(), id, req.PlayerID)
	if err != nil {
		writeServiceError(w, err, "failed to record lost detection")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *SimHandler) UpdateEntity(w http.ResponseWriter, r *http.Request) {
	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid entity id")
		return
	}

	var req entityUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := h.world.Kind(id)
	if err != nil {
		writeServiceError(w, err, "failed to update entity")
		return
	}
	if err := req.check(kind); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	changed := false
	switch kind {
	case domain.KindStar:
		err = h.world.UpdateStar(id, func(s *data.Star) {
			changed = apply(req.Name, s.SetName) || changed
			changed = apply(req.Category, s.SetCategory) || changed
		})
	case domain.KindPlanet:
		err = h.world.UpdatePlanet(id, func(p *data.Planet) {
			changed = apply(req.Name, p.SetName) || changed
			changed = apply(req.Owner, p.SetOwner) || changed
			changed = apply(req.Capacity, p.SetCapacity) || changed
			changed = apply(req.Resources, p.SetResources) || changed
			changed = apply(req.Health, p.SetHealth) || changed
		})
	case domain.KindShip:
		err = h.world.UpdateShip(id, func(s *data.Ship) {
			changed = apply(req.Name, s.SetName) || changed
			changed = apply(req.Owner, s.SetOwner) || changed
			changed = apply(req.Category, s.SetCategory) || changed
			changed = apply(req.Strength, s.SetStrength) || changed
			changed = apply(req.Health, s.SetHealth) || changed
			changed = apply(req.Speed, s.SetSpeed) || changed
		})
	case domain.KindFleet:
		err = h.world.UpdateFleet(id, func(f *data.Fleet) {
			changed = apply(req.Name, f.SetName) || changed
			changed = apply(req.Owner, f.SetOwner) || changed
			changed = apply(req.Speed, f.SetSpeed) || changed
		})
	}
	if err != nil {
		writeServiceError(w, err, "failed to update entity")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"id": id.String(), "kind": kind, "changed": changed})
}

func (h *SimHandler) AssignShip(w http.ResponseWriter, r *http.Request) {
	fleetID, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid fleet id")
		return
	}

	var req fleetMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.world.AssignShip(fleetID, req.ShipID); err != nil {
		writeServiceError(w, err, "failed to assign ship")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SimHandler) RemoveShip(w http.ResponseWriter, r *http.Request) {
	fleetID, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid fleet id")
		return
	}
	shipID, ok := urlUUID(r, "shipID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid ship id")
		return
	}

	if err := h.world.RemoveShip(fleetID, shipID); err != nil {
		writeServiceError(w, err, "failed to remove ship")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// knownPlayer rejects signals about players that were never registered.
func (h *SimHandler) knownPlayer(w http.ResponseWriter, r *http.Request, playerID uuid.UUID) bool {
	if playerID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "player_id is required")
		return false
	}
	if _, err := h.players.GetByID(r.Context(), playerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "player not found")
			return false
		}
		h.logger.Error("failed to look up player", zap.String("player_id", playerID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to look up player")
		return false
	}
	return true
}

func (req entityUpdateRequest) check(kind domain.EntityKind) error {
	allowed := map[domain.EntityKind][]bool{
		domain.KindStar:   {req.Owner == nil, req.Capacity == nil, req.Resources == nil, req.Health == nil, req.Strength == nil, req.Speed == nil},
		domain.KindPlanet: {req.Category == nil, req.Strength == nil, req.Speed == nil},
		domain.KindShip:   {req.Capacity == nil, req.Resources == nil},
		domain.KindFleet:  {req.Category == nil, req.Capacity == nil, req.Resources == nil, req.Health == nil, req.Strength == nil},
	}
	for _, ok := range allowed[kind] {
		if !ok {
			return errFieldNotApplicable
		}
	}
	return nil
}

func apply[T any](v *T, set func(T) bool) bool {
	if v == nil {
		return false
	}
	return set(*v)
}
