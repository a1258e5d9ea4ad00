package bootstrap

import (
	"context"
	"fmt"

	"github.com/studiokit/projects-backend/config"
	"github.com/studiokit/projects-backend/internal/projects"
	projectpg "github.com/studiokit/projects-backend/internal/projects/postgres"
	projectsb "github.com/studiokit/projects-backend/internal/projects/supabase"
	"github.com/studiokit/projects-backend/internal/supabase"
)

// OpenStore builds the configured project store. The returned closer releases
// backend resources (the pgx pool for postgres; a no-op for supabase).
func OpenStore(ctx context.Context, cfg config.StoreConfig) (projects.Store, func(), error) {
	switch cfg.Backend {
	case "postgres":
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.DatabaseURL})
		if err != nil {
			return nil, nil, err
		}
		return projectpg.NewStore(pool), pool.Close, nil

	case "supabase":
		client, err := supabase.New(supabase.Config{
			URL:    cfg.SupabaseURL,
			APIKey: cfg.SupabaseKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return projectsb.NewStore(client), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
