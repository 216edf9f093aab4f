package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/revenue-map/internal/allocate"
	"github.com/sells-group/revenue-map/internal/indicator"
	"github.com/sells-group/revenue-map/pkg/worldbank"
)

const taxonomyCSV = `name,alpha-2,alpha-3,region,sub-region
United States of America,US,USA,Americas,Northern America
Germany,DE,DEU,Europe,Western Europe
Japan,JP,JPN,Asia,Eastern Asia
Antarctica,AQ,ATA,,
`

type stubFetcher struct {
	err error
}

func (s *stubFetcher) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(taxonomyCSV)), nil
}

func (s *stubFetcher) DownloadToFile(ctx context.Context, url, path string) (int64, error) {
	return 0, nil
}

type stubSeries struct {
	err error
}

func (s *stubSeries) Series(ctx context.Context, code string, startYear, endYear int) ([]worldbank.Observation, error) {
	if s.err != nil {
		return nil, s.err
	}
	v := func(f float64) *float64 { return &f }
	switch code {
	case indicator.CodeGDP:
		return []worldbank.Observation{
			{ISO3: "USA", Year: 2024, Value: v(2.7e13)},
			{ISO3: "DEU", Year: 2024, Value: v(4.5e12)},
			{ISO3: "JPN", Year: 2024, Value: v(4.2e12)},
		}, nil
	case indicator.CodePopulation:
		return []worldbank.Observation{{ISO3: "USA", Year: 2024, Value: v(3.3e8)}}, nil
	default:
		return nil, nil
	}
}

func newTestPipeline(t *testing.T, f *stubFetcher, s *stubSeries) *Pipeline {
	t.Helper()
	engine, err := allocate.NewEngine(allocate.Anchors{Americas: 4500, EMEA: 3200, APAC: 1800}, allocate.DefaultOverrides())
	require.NoError(t, err)
	return New(f, indicator.NewRepository(s), engine, "http://example.test/all.csv")
}

func TestRun(t *testing.T) {
	p := newTestPipeline(t, &stubFetcher{}, &stubSeries{})

	result, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Rows, 4)

	usa, ok := result.RowByISO3("USA")
	require.True(t, ok)
	assert.InEpsilon(t, 4500, usa.RevenueMillions, 1e-6, "sole Americas country takes the whole anchor")
	assert.Equal(t, 3.3e8, usa.Population)

	ata, ok := result.RowByISO3("ATA")
	require.True(t, ok)
	assert.Zero(t, ata.RevenueMillions)
}

func TestRun_TaxonomyFailureAborts(t *testing.T) {
	p := newTestPipeline(t, &stubFetcher{err: assert.AnError}, &stubSeries{})
	_, err := p.Run(context.Background())
	require.Error(t, err)
}

func TestRun_IndicatorFailureAborts(t *testing.T) {
	p := newTestPipeline(t, &stubFetcher{}, &stubSeries{err: assert.AnError})
	result, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, result, "no partial results on retrieval failure")
}
