package store

import (
	"context"
	"fmt"

	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/db"
)

// Open builds the store selected by cfg.StoreDriver. The returned pool is
// non-nil only for the postgres driver; the caller closes it.
func Open(ctx context.Context, cfg *config.Config) (Store, *db.Pool, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return NewMemory(), nil, nil
	case config.DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case config.DriverPostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewPostgres(pool), pool, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
