// Seed script for registering demo players against the configured store.
// Run with: go run ./scripts/seed.go
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"

	"github.com/Harshitk-cp/intelreport/internal/api/middleware"
	"github.com/Harshitk-cp/intelreport/internal/config"
	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/Harshitk-cp/intelreport/internal/scenario"
	"github.com/Harshitk-cp/intelreport/internal/service"
	"github.com/Harshitk-cp/intelreport/internal/store"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	driver := config.StoreDriver()
	if driver == "memory" {
		log.Fatal("Seeding the memory store is pointless; set STORE_DRIVER to postgres or sqlite")
	}

	ctx := context.Background()

	backend, err := store.Open(ctx, driver, config.DatabaseURL(), config.SQLitePath())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	fmt.Printf("Connected to %s store\n", backend.Driver)

	keys := make(map[string]string)
	for _, name := range []string{"Red Admiral", "Blue Admiral"} {
		apiKey := generateAPIKey()
		player := &domain.Player{Name: name, APIKeyHash: middleware.HashAPIKey(apiKey)}
		if err := backend.Players.Create(ctx, player); err != nil {
			log.Fatalf("Failed to create player %q: %v", name, err)
		}
		keys[player.ID.String()] = apiKey
		fmt.Printf("Created player: %s (%s)\n", player.ID, name)
		fmt.Printf("API Key: %s\n", apiKey)
	}
	fmt.Println("(Save these API keys - they cannot be retrieved later)")

	path := config.ScenarioFile()
	if path == "" {
		path = "scenarios/demo.yaml"
	}
	sc, err := scenario.Load(path)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	// Applying to a throwaway world resolves the ids the server will use.
	ids, err := sc.Apply(service.NewWorldService(backend.Intel, zap.NewNop()))
	if err != nil {
		log.Fatalf("Failed to apply scenario: %v", err)
	}

	fmt.Println("\n=== Seed Complete ===")
	fmt.Printf("\nScenario %s defines %d entities:\n", path, len(ids))
	for key, id := range ids {
		fmt.Printf("  %-12s %s\n", key, id)
	}

	fmt.Println("\nTo signal a detection (requires ADMIN_API_KEY):")
	for playerID := range keys {
		fmt.Printf("curl -X POST -H 'Authorization: Bearer $ADMIN_API_KEY' -d '{\"player_id\":\"%s\",\"coverage\":\"basic\"}' http://localhost:8080/v1/sim/entities/<id>/detection\n", playerID)
		fmt.Printf("\nTo read the label that player sees:")
		fmt.Printf("\ncurl -H 'Authorization: Bearer %s' 'http://localhost:8080/v1/entities/<id>/text?target=hover&include_unknown=true'\n", keys[playerID])
		break
	}
}

func generateAPIKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate API key: %v", err)
	}
	return "ik_" + hex.EncodeToString(b)
}
