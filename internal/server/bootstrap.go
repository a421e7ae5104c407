// internal/server/bootstrap.go
package server

import (
	"context"
	"fmt"
	"time"

	"advisor-services/internal/common/config"
	"advisor-services/internal/common/database"
	"advisor-services/internal/common/genai"
	"advisor-services/internal/common/logger"
	"advisor-services/internal/dataset"
	sopconversation "advisor-services/internal/services/documents/sop-conversation"
	"advisor-services/internal/store/universities"
	"advisor-services/pkg/registry"
)

// Bootstrap loads the datasets and connects the configured backends. The
// returned cleanup closes everything that was opened, even on error.
func Bootstrap(ctx context.Context, cfg *config.Config, log logger.Logger) (Deps, func(), error) {
	var (
		deps    = Deps{Backends: make(map[string]database.Pinger)}
		closers []func() error
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("cleanup failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	students, err := dataset.LoadStudents(cfg.Data.StudentsPath)
	if err != nil {
		return deps, cleanup, err
	}
	visas, err := dataset.LoadVisaCatalog(cfg.Data.VisaPath)
	if err != nil {
		return deps, cleanup, err
	}
	deps.Students, deps.Visas = students, visas
	log.Info("datasets loaded", map[string]interface{}{
		"students":  students.Len(),
		"countries": visas.Len(),
	})

	if cfg.Server.CatalogPath != "" {
		catalog, err := registry.Load(cfg.Server.CatalogPath)
		if err != nil {
			return deps, cleanup, err
		}
		deps.Catalog = catalog
	}

	unis, err := openUniversities(cfg, &deps, &closers)
	if err != nil {
		return deps, cleanup, err
	}
	if unis != nil {
		deps.Universities = universities.NewInstrumented(unis, cfg.Universities.Backend)
	}

	sessions, err := openSessions(cfg, &deps, &closers)
	if err != nil {
		return deps, cleanup, err
	}
	deps.Sessions = sessions

	if cfg.APIs.GenAI.BaseURL != "" {
		deps.Generator = genai.NewClient(cfg.APIs.GenAI.BaseURL, cfg.APIs.GenAI.APIKey, config.GetDuration(cfg.APIs.GenAI.Timeout))
	}

	if err := database.CheckAll(ctx, config.GetDuration(cfg.Server.ReadTimeout), deps.Backends); err != nil {
		// Backends may come up after the server; /ready reports it.
		log.Warn("backend check failed", map[string]interface{}{"error": err.Error()})
	}

	log.Info("backends configured", map[string]interface{}{
		"universities": cfg.Universities.Backend,
		"sessions":     cfg.Sessions.Backend,
		"generation":   deps.Generator != nil,
	})
	return deps, cleanup, nil
}

func openUniversities(cfg *config.Config, deps *Deps, closers *[]func() error) (universities.Store, error) {
	switch cfg.Universities.Backend {
	case config.BackendPostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, pg.Close)
		deps.Backends["postgres"] = pg
		return universities.NewPostgresStore(pg.DB, cfg.Universities.Table), nil
	case config.BackendElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, err
		}
		deps.Backends["elasticsearch"] = es
		return universities.NewElasticsearchStore(es.Client, cfg.Universities.Index), nil
	case config.BackendMemory:
		mem, err := universities.LoadMemoryStore(cfg.Universities.SeedPath)
		if err != nil {
			return nil, err
		}
		return mem, nil
	case config.BackendNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported university backend %q", cfg.Universities.Backend)
	}
}

func openSessions(cfg *config.Config, deps *Deps, closers *[]func() error) (sopconversation.SessionStore, error) {
	ttl := config.GetDuration(cfg.Sessions.TTL)
	switch cfg.Sessions.Backend {
	case config.BackendRedis:
		rdb := database.NewRedis(cfg.Database.Redis)
		*closers = append(*closers, rdb.Close)
		deps.Backends["redis"] = rdb
		return sopconversation.NewRedisStore(rdb.Client, cfg.Sessions.KeyPrefix, ttl), nil
	case config.BackendMemory:
		store := sopconversation.NewMemoryStore(sopconversation.MemoryStoreConfig{
			TTL:             ttl,
			MaxSessions:     cfg.Sessions.MaxSessions,
			JanitorInterval: janitorInterval(ttl),
		})
		*closers = append(*closers, store.Close)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported session backend %q", cfg.Sessions.Backend)
	}
}

func janitorInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	i := ttl / 10
	switch {
	case i > time.Minute:
		return time.Minute
	case i < time.Second:
		return time.Second
	}
	return i
}
