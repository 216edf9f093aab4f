// Package pipeline orchestrates one allocation invocation: taxonomy load,
// concurrent indicator retrieval, then scoring and normalization.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/revenue-map/internal/allocate"
	"github.com/sells-group/revenue-map/internal/fetcher"
	"github.com/sells-group/revenue-map/internal/indicator"
	"github.com/sells-group/revenue-map/internal/model"
	"github.com/sells-group/revenue-map/internal/taxonomy"
)

// Pipeline computes allocations. Each Run is independent; nothing is
// cached between invocations.
type Pipeline struct {
	fetch       fetcher.Fetcher
	repo        *indicator.Repository
	engine      *allocate.Engine
	taxonomyURL string
}

// New assembles a Pipeline from its collaborators.
func New(f fetcher.Fetcher, repo *indicator.Repository, engine *allocate.Engine, taxonomyURL string) *Pipeline {
	return &Pipeline{
		fetch:       f,
		repo:        repo,
		engine:      engine,
		taxonomyURL: taxonomyURL,
	}
}

// Run executes the full pipeline. The taxonomy fetch and the six
// indicator fetches run concurrently with a barrier before scoring; any
// retrieval failure aborts the invocation with no partial result.
func (p *Pipeline) Run(ctx context.Context) (*model.Result, error) {
	start := time.Now()

	var countries []model.Country
	var ind *model.IndicatorSet

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		countries, err = taxonomy.Load(gctx, p.fetch, p.taxonomyURL)
		return err
	})
	g.Go(func() error {
		var err error
		ind, err = p.repo.Load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "pipeline: load inputs")
	}

	result := p.engine.Allocate(countries, ind)

	zap.L().Info("pipeline: run complete",
		zap.Int("countries", len(result.Rows)),
		zap.Float64("grand_total_millions", result.GrandTotal),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}
