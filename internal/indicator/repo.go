package indicator

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/revenue-map/internal/model"
	"github.com/sells-group/revenue-map/pkg/worldbank"
)

// SeriesFetcher retrieves the raw observations for one indicator code
// over a year window. *worldbank.Client satisfies this.
type SeriesFetcher interface {
	Series(ctx context.Context, code string, startYear, endYear int) ([]worldbank.Observation, error)
}

// Repository loads the six indicator lookups.
type Repository struct {
	fetcher       SeriesFetcher
	lookbackYears int
	now           func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithLookback sets the width of the historical window in years.
func WithLookback(years int) Option {
	return func(r *Repository) { r.lookbackYears = years }
}

// WithNow overrides the clock (used in tests).
func WithNow(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// NewRepository creates a Repository reading from the given fetcher.
func NewRepository(f SeriesFetcher, opts ...Option) *Repository {
	r := &Repository{
		fetcher:       f,
		lookbackYears: 7,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load fetches all six series concurrently and reduces each to its
// latest-value lookup. The six retrievals share no mutable state; each
// writes its own slot and the merge happens only after every fetch has
// completed. Any fetch failure aborts the whole load — there is no
// partial-result mode.
func (r *Repository) Load(ctx context.Context) (*model.IndicatorSet, error) {
	endYear := r.now().Year()
	startYear := endYear - r.lookbackYears

	var set model.IndicatorSet
	targets := []struct {
		code string
		dst  *model.Series
	}{
		{CodeGDP, &set.GDP},
		{CodeMarketCap, &set.MarketCap},
		{CodeCredit, &set.Credit},
		{CodeGDPPerCap, &set.GDPPerCap},
		{CodeInternet, &set.Internet},
		{CodePopulation, &set.Population},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		g.Go(func() error {
			obs, err := r.fetcher.Series(gctx, target.code, startYear, endYear)
			if err != nil {
				return eris.Wrapf(err, "indicator: load %s", target.code)
			}
			*target.dst = Reduce(obs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Info("indicator: series loaded",
		zap.Int("start_year", startYear),
		zap.Int("end_year", endYear),
		zap.Int("gdp_countries", len(set.GDP)),
		zap.Int("population_countries", len(set.Population)),
	)

	return &set, nil
}
