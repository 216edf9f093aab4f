package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/revenue-map/internal/allocate"
	"github.com/sells-group/revenue-map/internal/fetcher"
	"github.com/sells-group/revenue-map/internal/indicator"
	"github.com/sells-group/revenue-map/internal/pipeline"
	"github.com/sells-group/revenue-map/internal/store"
	"github.com/sells-group/revenue-map/pkg/worldbank"
)

// initStore opens the configured run-store backend and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var st store.Store
	var err error

	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.SQLitePath)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initPipeline wires the fetcher, World Bank client, indicator
// repository, and allocation engine from config.
func initPipeline() (*pipeline.Pipeline, error) {
	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.Fetch.UserAgent,
		Timeout:      time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		RateLimiters: fetcher.DefaultRateLimiters(),
	})

	var wbOpts []worldbank.Option
	if cfg.Sources.WorldBankBaseURL != "" {
		wbOpts = append(wbOpts, worldbank.WithBaseURL(cfg.Sources.WorldBankBaseURL))
	}
	wb := worldbank.NewClient(f, wbOpts...)

	repo := indicator.NewRepository(wb, indicator.WithLookback(cfg.Sources.LookbackYears))

	overrides := allocate.DefaultOverrides()
	if cfg.Overrides.Path != "" {
		var err error
		overrides, err = allocate.LoadOverrides(cfg.Overrides.Path)
		if err != nil {
			return nil, err
		}
	}

	engine, err := allocate.NewEngine(cfg.Anchors, overrides)
	if err != nil {
		return nil, err
	}

	return pipeline.New(f, repo, engine, cfg.Sources.TaxonomyURL), nil
}
