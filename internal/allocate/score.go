package allocate

import (
	"math"

	"github.com/sells-group/revenue-map/internal/model"
)

// Scoring constants. The exponents express relative proxy importance; the
// 0.2 floor on the internet factor keeps a zero-internet reading from
// collapsing a country's score to zero.
const (
	gdpExponent       = 0.70
	marketCapExponent = 0.90
	creditExponent    = 0.60
	gdpPerCapExponent = 0.35
	internetExponent  = 0.25

	internetFloor  = 0.2
	gdpPerCapScale = 50000.0

	marketCapMax = 400.0
	creditMax    = 300.0
	gdpPerCapMax = 80000.0
	internetMax  = 100.0

	officeMultiplier   = 1.15
	nearZeroMultiplier = 0.01

	// negligibleScore keeps a country with no usable GDP strictly
	// positive so it sorts and divides cleanly while receiving an
	// effectively-zero allocation.
	negligibleScore = 1e-9
)

// Scores holds one positive score per country, keyed by segment. Scores
// are only comparable within the same segment.
type Scores map[model.Segment]map[string]float64

// ComputeScores derives the composite score for every allocatable
// country. Countries with an empty segment are skipped entirely.
func ComputeScores(countries []model.Country, ind *model.IndicatorSet, medians map[model.Segment]model.SegmentMedians, ov *Overrides) Scores {
	scores := make(Scores, len(model.Segments))
	for _, seg := range model.Segments {
		scores[seg] = make(map[string]float64)
	}

	for _, c := range countries {
		seg, ok := scores[c.Segment]
		if !ok {
			continue
		}
		seg[c.ISO3] = scoreCountry(c, ind, medians[c.Segment], ov)
	}

	return scores
}

// scoreCountry computes the multiplicative composite score for one
// country, then compounds the hub, office, and sanctions multipliers in
// that order.
func scoreCountry(c model.Country, ind *model.IndicatorSet, med model.SegmentMedians, ov *Overrides) float64 {
	gdp, ok := ind.GDP.Value(c.ISO3)
	if !ok || !isFinite(gdp) || gdp <= 0 {
		return negligibleScore
	}

	mcap := resolve(ind.MarketCap, c.ISO3, med.MarketCap, marketCapMax)
	credit := resolve(ind.Credit, c.ISO3, med.Credit, creditMax)
	gdppc := resolve(ind.GDPPerCap, c.ISO3, med.GDPPerCap, gdpPerCapMax)
	net := resolve(ind.Internet, c.ISO3, med.Internet, internetMax)

	score := math.Pow(gdp, gdpExponent) *
		math.Pow(1+mcap/100, marketCapExponent) *
		math.Pow(1+credit/100, creditExponent) *
		math.Pow(1+gdppc/gdpPerCapScale, gdpPerCapExponent) *
		math.Pow(internetFloor+net/100, internetExponent)

	score *= ov.HubMultiplier(c.ISO3)
	if ov.IsOffice(c.ISO3) {
		score *= officeMultiplier
	}
	if ov.IsNearZero(c.ISO3) {
		score *= nearZeroMultiplier
	}

	return score
}

// resolve returns the country's direct indicator value, or the segment
// median when the direct value is missing or non-finite, clamped to
// [0, max] in either case.
func resolve(s model.Series, iso3 string, fallback, max float64) float64 {
	v, ok := s.Value(iso3)
	if !ok || !isFinite(v) {
		v = fallback
	}
	return clamp(v, 0, max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
