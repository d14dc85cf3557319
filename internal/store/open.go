package store

import (
	"context"
	"fmt"

	"github.com/Harshitk-cp/intelreport/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Backend bundles the stores of one storage driver.
type Backend struct {
	Driver  string
	Players domain.PlayerStore
	Intel   domain.IntelStore
	ping    func(ctx context.Context) error
	close   func()
}

func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open creates the backend for driver.
// Valid drivers: postgres, sqlite, memory
func Open(ctx context.Context, driver, databaseURL, sqlitePath string) (*Backend, error) {
	switch driver {
	case "postgres":
		if databaseURL == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_URL")
		}
		pool, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return &Backend{
			Driver:  driver,
			Players: NewPlayerStore(pool),
			Intel:   NewIntelStore(pool),
			ping:    pool.Ping,
			close:   pool.Close,
		}, nil
	case "sqlite":
		db, err := OpenSQLite(sqlitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver:  driver,
			Players: NewSQLitePlayerStore(db),
			Intel:   NewSQLiteIntelStore(db),
			ping:    db.Ping,
			close:   func() { _ = db.Close() },
		}, nil
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}

func NewMemoryBackend() *Backend {
	return &Backend{
		Driver:  "memory",
		Players: NewMemoryPlayerStore(),
		Intel:   NewMemoryIntelStore(),
	}
}

var (
	_ domain.PlayerStore = (*PlayerStore)(nil)
	_ domain.IntelStore  = (*IntelStore)(nil)
	_ domain.PlayerStore = (*SQLitePlayerStore)(nil)
	_ domain.IntelStore  = (*SQLiteIntelStore)(nil)
	_ domain.PlayerStore = (*MemoryPlayerStore)(nil)
	_ domain.IntelStore  = (*MemoryIntelStore)(nil)
)
