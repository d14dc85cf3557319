package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Harshitk-cp/intelreport/internal/api/middleware"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntityHandler serves the authenticated player's view of entities.
type EntityHandler struct {
	world  *service.WorldService
	logger *zap.Logger
}

func NewEntityHandler(world *service.WorldService, logger *zap.Logger) *EntityHandler {
	return &EntityHandler{world: world, logger: logger}
}

type textResponse struct {
	EntityID       string               `json:"entity_id"`
	Kind           domain.EntityKind    `json:"kind"`
	Target         domain.DisplayTarget `json:"target"`
	IncludeUnknown bool                 `json:"include_unknown"`
	Text           string               `json:"text"`
	Lines          []string             `json:"lines"`
}

func (h *EntityHandler) Report(w http.ResponseWriter, r *http.Request) {
	player, id, ok := h.params(w, r)
	if !ok {
		return
	}

	rep, err := h.world.GetReport(r.Context(), id, player.ID)
	if err != nil {
		h.logFailure("get report", id, err)
		writeServiceError(w, err, "failed to get report")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// Text renders the entity label. target defaults to hover.
func (h *EntityHandler) Text(w http.ResponseWriter, r *http.Request) {
	player, id, ok := h.params(w, r)
	if !ok {
		return
	}

	target := domain.TargetHover
	if t := r.URL.Query().Get("target"); t != "" {
		if !domain.ValidDisplayTarget(t) {
			writeError(w, http.StatusBadRequest, "invalid target")
			return
		}
		target = domain.DisplayTarget(t)
	}

	includeUnknown := false
	if v := r.URL.Query().Get("include_unknown"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid include_unknown")
			return
		}
		includeUnknown = b
	}

	kind, err := h.world.Kind(id)
	if err != nil {
		writeServiceError(w, err, "failed to render text")
		return
	}

	text, err := h.world.GetText(r.Context(), id, player.ID, target, includeUnknown)
	if err != nil {
		h.logFailure("render text", id, err)
		writeServiceError(w, err, "failed to render text")
		return
	}

	lines := []string{}
	if text != "" {
		lines = strings.Split(text, "\n")
	}

	writeJSON(w, http.StatusOK, textResponse{
		EntityID:       id.String(),
		Kind:           kind,
		Target:         target,
		IncludeUnknown: includeUnknown,
		Text:           text,
		Lines:          lines,
	})
}

func (h *EntityHandler) Intel(w http.ResponseWriter, r *http.Request) {
	player, id, ok := h.params(w, r)
	if !ok {
		return
	}

	rec, err := h.world.IntelState(r.Context(), id, player.ID)
	if err != nil {
		h.logFailure("get intel", id, err)
		writeServiceError(w, err, "failed to get intel")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// KnownIntel lists everything the authenticated player has intel on.
func (h *EntityHandler) KnownIntel(w http.ResponseWriter, r *http.Request) {
	player := middleware.PlayerFromContext(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	recs, err := h.world.KnownIntel(r.Context(), player.ID)
	if err != nil {
		h.logger.Error("failed to list intel", zap.String("player_id", player.ID.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list intel")
		return
	}
	if recs == nil {
		recs = []domain.IntelRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"intel": recs})
}

func (h *EntityHandler) params(w http.ResponseWriter, r *http.Request) (*domain.Player, uuid.UUID, bool) {
	player := middleware.PlayerFromContext(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, uuid.Nil, false
	}

	id, ok := urlUUID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid entity id")
		return nil, uuid.Nil, false
	}
	return player, id, true
}

func (h *EntityHandler) logFailure(op string, id uuid.UUID, err error) {
	h.logger.Debug(op+" failed", zap.String("entity_id", id.String()), zap.Error(err))
}
