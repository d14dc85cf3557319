package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Harshitk-cp/intelreport/internal/domain"
)

type contextKey string

const (
	playerContextKey contextKey = "player"
	holderContextKey contextKey = "player_holder"
)

type playerHolder struct {
	player *domain.Player
}

func withPlayerHolder(ctx context.Context, h *playerHolder) context.Context {
	return context.WithValue(ctx, holderContextKey, h)
}

func PlayerFromContext(ctx context.Context) *domain.Player {
	p, _ := ctx.Value(playerContextKey).(*domain.Player)
	return p
}

// WithPlayer returns a copy of ctx carrying p, as PlayerAuth would.
func WithPlayer(ctx context.Context, p *domain.Player) context.Context {
	if h, ok := ctx.Value(holderContextKey).(*playerHolder); ok {
		h.player = p
	}
	return context.WithValue(ctx, playerContextKey, p)
}

// PlayerAuth resolves the bearer token to a player. Every report and label
// the request sees is computed for that player.
func PlayerAuth(players domain.PlayerStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey, msg := bearerToken(r)
			if msg != "" {
				writeError(w, http.StatusUnauthorized, msg)
				return
			}

			player, err := players.GetByAPIKeyHash(r.Context(), HashAPIKey(apiKey))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPlayer(r.Context(), player)))
		})
	}
}

// AdminKeyAuth guards the simulation routes. An empty adminKey disables
// them entirely.
func AdminKeyAuth(adminKey string) func(http.Handler) http.Handler {
	want := sha256.Sum256([]byte(adminKey))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" {
				writeError(w, http.StatusForbidden, "simulation API is disabled")
				return
			}

			apiKey, msg := bearerToken(r)
			if msg != "" {
				writeError(w, http.StatusUnauthorized, msg)
				return
			}

			got := sha256.Sum256([]byte(apiKey))
			if subtle.ConstantTimeCompare(got[:], want[:]) != 1 {
				writeError(w, http.StatusUnauthorized, "invalid admin key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "missing authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", "invalid authorization header format"
	}
	return parts[1], ""
}

// HashAPIKey is the form API keys are stored in.
func HashAPIKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:])
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
