package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/intelreport/internal/api/middleware"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/store"
	"go.uber.org/zap"
)

type PlayerHandler struct {
	store  domain.PlayerStore
	logger *zap.Logger
}

func NewPlayerHandler(store domain.PlayerStore, logger *zap.Logger) *PlayerHandler {
	return &PlayerHandler{store: store, logger: logger}
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

type createPlayerResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

// Create registers a player. The API key is only ever returned here.
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate API key")
		return
	}

	player := &domain.Player{
		Name:       req.Name,
		APIKeyHash: middleware.HashAPIKey(apiKey),
	}

	if err := h.store.Create(r.Context(), player); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "player already exists")
			return
		}
		h.logger.Error("failed to create player", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create player")
		return
	}

	writeJSON(w, http.StatusCreated, createPlayerResponse{
		ID:     player.ID.String(),
		Name:   player.Name,
		APIKey: apiKey,
	})
}

// Me returns the authenticated player.
func (h *PlayerHandler) Me(w http.ResponseWriter, r *http.Request) {
	player := middleware.PlayerFromContext(r.Context())
	if player == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func generateAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "ik_" + hex.EncodeToString(b), nil
}
