// Package allocate implements the allocation engine: segment fallback
// medians, composite country scoring, and normalization of scores into
// revenue shares of the three disclosed segment anchors.
package allocate

import (
	"math"
	"sort"

	"github.com/sells-group/revenue-map/internal/model"
)

// Literal fallbacks used when a segment has no valid observations at all
// for an indicator. Deliberate, documented defaults, not data artifacts.
const (
	defaultMarketCap = 30.0
	defaultCredit    = 50.0
	defaultGDPPerCap = 8000.0
	defaultInternet  = 55.0
)

// ComputeMedians derives per-segment fallback values for the four
// optional scoring indicators from every allocatable country that has a
// finite direct value. GDP is excluded: a missing GDP has its own
// negligible-score policy rather than a fallback.
func ComputeMedians(countries []model.Country, ind *model.IndicatorSet) map[model.Segment]model.SegmentMedians {
	type buckets struct {
		mcap, credit, gdppc, net []float64
	}
	bySegment := make(map[model.Segment]*buckets, len(model.Segments))
	for _, seg := range model.Segments {
		bySegment[seg] = &buckets{}
	}

	collect := func(dst *[]float64, s model.Series, iso3 string) {
		if v, ok := s.Value(iso3); ok && isFinite(v) {
			*dst = append(*dst, v)
		}
	}

	for _, c := range countries {
		b, ok := bySegment[c.Segment]
		if !ok {
			continue
		}
		collect(&b.mcap, ind.MarketCap, c.ISO3)
		collect(&b.credit, ind.Credit, c.ISO3)
		collect(&b.gdppc, ind.GDPPerCap, c.ISO3)
		collect(&b.net, ind.Internet, c.ISO3)
	}

	out := make(map[model.Segment]model.SegmentMedians, len(model.Segments))
	for seg, b := range bySegment {
		out[seg] = model.SegmentMedians{
			MarketCap: medianOr(b.mcap, defaultMarketCap),
			Credit:    medianOr(b.credit, defaultCredit),
			GDPPerCap: medianOr(b.gdppc, defaultGDPPerCap),
			Internet:  medianOr(b.net, defaultInternet),
		}
	}
	return out
}

// Median returns the middle value of vs, averaging the two middle values
// for an even count. ok is false for empty input.
func Median(vs []float64) (float64, bool) {
	if len(vs) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

func medianOr(vs []float64, fallback float64) float64 {
	if m, ok := Median(vs); ok {
		return m
	}
	return fallback
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
