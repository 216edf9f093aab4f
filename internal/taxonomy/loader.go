// Package taxonomy loads the ISO-3166 country reference list and derives
// each country's revenue segment.
package taxonomy

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-map/internal/fetcher"
	"github.com/sells-group/revenue-map/internal/model"
)

// DefaultURL is the ISO-3166 country list with UN regional codes.
const DefaultURL = "https://raw.githubusercontent.com/lukes/ISO-3166-Countries-with-Regional-Codes/master/all/all.csv"

// Column names recognized in the taxonomy header, lowercased.
const (
	colName      = "name"
	colAlpha2    = "alpha-2"
	colAlpha3    = "alpha-3"
	colRegion    = "region"
	colSubRegion = "sub-region"
)

// Load downloads and parses the taxonomy feed. Rows missing an ISO3 code
// or a display name are dropped. A retrieval or parse failure is fatal to
// the whole pipeline.
func Load(ctx context.Context, f fetcher.Fetcher, url string) ([]model.Country, error) {
	if url == "" {
		url = DefaultURL
	}

	body, err := f.Download(ctx, url)
	if err != nil {
		return nil, eris.Wrap(err, "taxonomy: download")
	}
	defer body.Close() //nolint:errcheck

	header, rows, err := fetcher.ReadAllCSV(ctx, body, fetcher.CSVOptions{HasHeader: true, TrimSpace: true})
	if err != nil {
		return nil, eris.Wrap(err, "taxonomy: parse")
	}

	countries, err := Parse(header, rows)
	if err != nil {
		return nil, err
	}

	zap.L().Info("taxonomy: loaded",
		zap.String("url", url),
		zap.Int("countries", len(countries)),
	)

	return countries, nil
}

// Parse builds country records from an already-parsed header and row set.
// Column positions are resolved from the header by name so upstream column
// reordering does not break the loader.
func Parse(header []string, rows [][]string) ([]model.Country, error) {
	if len(header) == 0 {
		return nil, eris.New("taxonomy: missing header row")
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}

	for _, required := range []string{colName, colAlpha3} {
		if _, ok := idx[required]; !ok {
			return nil, eris.Errorf("taxonomy: header missing %q column", required)
		}
	}

	field := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var countries []model.Country
	var dropped int
	for _, row := range rows {
		iso3 := strings.ToUpper(field(row, colAlpha3))
		name := field(row, colName)
		if iso3 == "" || name == "" {
			dropped++
			continue
		}

		region := field(row, colRegion)
		subRegion := field(row, colSubRegion)

		countries = append(countries, model.Country{
			ISO3:      iso3,
			Alpha2:    strings.ToUpper(field(row, colAlpha2)),
			Name:      name,
			Region:    region,
			SubRegion: subRegion,
			Segment:   SegmentOf(region, subRegion),
		})
	}

	if dropped > 0 {
		zap.L().Debug("taxonomy: dropped incomplete rows", zap.Int("dropped", dropped))
	}

	return countries, nil
}

// FindByName returns the country whose display name matches the query
// after diacritic folding and case normalization.
func FindByName(countries []model.Country, query string) (model.Country, bool) {
	want := FoldName(query)
	for _, c := range countries {
		if FoldName(c.Name) == want {
			return c, true
		}
	}
	return model.Country{}, false
}
