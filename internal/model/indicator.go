package model

// Observation is a single time-indexed reading of one indicator for one
// country. Sparse feeds are expected; missing years simply never produce
// an Observation.
type Observation struct {
	ISO3  string
	Year  int
	Value float64
}

// Latest is the most recent known value of one indicator for one country.
type Latest struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series maps ISO3 to the most recent observation of a single indicator.
type Series map[string]Latest

// Value returns the latest value for iso3, or ok=false when the country
// has no observation in the lookback window.
func (s Series) Value(iso3 string) (float64, bool) {
	l, ok := s[iso3]
	if !ok {
		return 0, false
	}
	return l.Value, true
}

// IndicatorSet bundles the per-country lookups the scorer reads. All six
// series are built independently and merged behind the fetch barrier; the
// set is immutable once assembled.
type IndicatorSet struct {
	GDP        Series
	MarketCap  Series
	Credit     Series
	GDPPerCap  Series
	Internet   Series
	Population Series
}
