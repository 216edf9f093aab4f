// Package worldbank is a minimal client for the World Bank v2 indicator
// API (api.worldbank.org). It fetches per-country time series for a single
// indicator code over a bounded year range.
package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-map/internal/fetcher"
)

// DefaultBaseURL is the public World Bank API endpoint.
const DefaultBaseURL = "https://api.worldbank.org/v2"

// Observation is one time-indexed reading for one country. Value is nil
// when the source reports a null (missing) observation for that year.
type Observation struct {
	ISO3  string
	Year  int
	Value *float64
}

// Client queries the World Bank indicator endpoint.
type Client struct {
	fetch   fetcher.Fetcher
	baseURL string
	perPage int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithPerPage overrides the page size.
func WithPerPage(n int) Option {
	return func(c *Client) { c.perPage = n }
}

// NewClient creates a World Bank client on top of the given fetcher.
func NewClient(f fetcher.Fetcher, opts ...Option) *Client {
	c := &Client{
		fetch:   f,
		baseURL: DefaultBaseURL,
		perPage: 20000,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pageMeta is the first element of every World Bank API response.
type pageMeta struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage any `json:"per_page"` // the API returns this as string or number depending on endpoint
	Total   int `json:"total"`
}

// rawObservation is the wire shape of one data point.
type rawObservation struct {
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
}

// Series fetches all observations for one indicator code across all
// countries in the [startYear, endYear] window. Observations with a
// missing country code or an unparseable year are dropped; null values
// are preserved so the caller can distinguish "reported null" from
// "absent".
func (c *Client) Series(ctx context.Context, code string, startYear, endYear int) ([]Observation, error) {
	var out []Observation

	page := 1
	for {
		obs, meta, err := c.fetchPage(ctx, code, startYear, endYear, page)
		if err != nil {
			return nil, err
		}
		out = append(out, obs...)

		if meta.Pages == 0 || page >= meta.Pages {
			break
		}
		page++
	}

	zap.L().Debug("worldbank: series fetched",
		zap.String("indicator", code),
		zap.Int("observations", len(out)),
	)

	return out, nil
}

func (c *Client) fetchPage(ctx context.Context, code string, startYear, endYear, page int) ([]Observation, pageMeta, error) {
	u := fmt.Sprintf("%s/country/all/indicator/%s?%s", c.baseURL, url.PathEscape(code), url.Values{
		"format":   {"json"},
		"per_page": {strconv.Itoa(c.perPage)},
		"date":     {fmt.Sprintf("%d:%d", startYear, endYear)},
		"page":     {strconv.Itoa(page)},
	}.Encode())

	body, err := c.fetch.Download(ctx, u)
	if err != nil {
		return nil, pageMeta{}, eris.Wrapf(err, "worldbank: fetch indicator %s page %d", code, page)
	}
	defer body.Close() //nolint:errcheck

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, pageMeta{}, eris.Wrapf(err, "worldbank: read indicator %s", code)
	}

	// Responses are a two-element array: [meta, rows]. Error responses
	// come back as a one-element array with a message object instead.
	var envelope []json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, pageMeta{}, eris.Wrapf(err, "worldbank: decode envelope for %s", code)
	}
	if len(envelope) < 2 {
		return nil, pageMeta{}, eris.Errorf("worldbank: error response for indicator %s: %s", code, truncate(string(data), 200))
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return nil, pageMeta{}, eris.Wrapf(err, "worldbank: decode page meta for %s", code)
	}

	var raw []rawObservation
	if err := json.Unmarshal(envelope[1], &raw); err != nil {
		return nil, pageMeta{}, eris.Wrapf(err, "worldbank: decode rows for %s", code)
	}

	obs := make([]Observation, 0, len(raw))
	for _, r := range raw {
		if r.CountryISO3 == "" {
			continue
		}
		year, err := strconv.Atoi(r.Date)
		if err != nil {
			continue
		}
		obs = append(obs, Observation{ISO3: r.CountryISO3, Year: year, Value: r.Value})
	}

	return obs, meta, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
