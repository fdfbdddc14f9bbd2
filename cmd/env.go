package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sj-alumni/directory-cli/internal/infer"
	"github.com/sj-alumni/directory-cli/internal/ingest"
	"github.com/sj-alumni/directory-cli/internal/match"
	"github.com/sj-alumni/directory-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, eris.Wrap(err, "migrate store")
		}
		return st, nil
	case "postgres":
		st, err := store.NewPostgres(ctx, cfg.Store.DatabaseURL, &cfg.Store.Pool)
		if err != nil {
			return nil, err
		}
		if err := st.Migrate(ctx); err != nil {
			st.Close()
			return nil, eris.Wrap(err, "migrate store")
		}
		return st, nil
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func initIngestor(st store.Store) *ingest.Ingestor {
	matcher := match.NewEngine(st, cfg.Match)
	var inferencer *infer.Inferencer
	if cfg.Infer.Enabled {
		inferencer = infer.New(cfg.Infer)
	}
	return ingest.New(st, matcher, inferencer)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
