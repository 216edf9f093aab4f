package allocate

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-map/internal/model"
)

// Anchors holds the three disclosed segment revenue totals, in millions.
type Anchors struct {
	Americas float64 `mapstructure:"americas_millions" yaml:"americas_millions"`
	EMEA     float64 `mapstructure:"emea_millions" yaml:"emea_millions"`
	APAC     float64 `mapstructure:"apac_millions" yaml:"apac_millions"`
}

// Map returns the anchors keyed by segment.
func (a Anchors) Map() map[model.Segment]float64 {
	return map[model.Segment]float64{
		model.SegmentAmericas: a.Americas,
		model.SegmentEMEA:     a.EMEA,
		model.SegmentAPAC:     a.APAC,
	}
}

// Total returns the grand total of the three anchors.
func (a Anchors) Total() float64 {
	return a.Americas + a.EMEA + a.APAC
}

// Engine turns loaded taxonomy and indicator data into a per-country
// revenue allocation. One Engine computes one immutable Result per
// Allocate call; repeated calls share no state.
type Engine struct {
	anchors   Anchors
	overrides *Overrides
}

// NewEngine creates an Engine for the given anchors and policy tables.
// Nil overrides fall back to the compiled-in defaults.
func NewEngine(anchors Anchors, ov *Overrides) (*Engine, error) {
	if anchors.Americas < 0 || anchors.EMEA < 0 || anchors.APAC < 0 {
		return nil, eris.New("allocate: anchors must be non-negative")
	}
	if anchors.Total() == 0 {
		return nil, eris.New("allocate: at least one anchor must be positive")
	}
	if ov == nil {
		ov = DefaultOverrides()
	}
	return &Engine{anchors: anchors, overrides: ov}, nil
}

// Allocate runs the full scoring and normalization pipeline:
// segment medians, composite scores, within-segment proportional shares
// of each anchor, then assembly of one output row per taxonomy country.
func (e *Engine) Allocate(countries []model.Country, ind *model.IndicatorSet) *model.Result {
	medians := ComputeMedians(countries, ind)
	scores := ComputeScores(countries, ind, medians, e.overrides)

	anchorBySegment := e.anchors.Map()

	// Pass 1: within each segment, scores become proportional shares of
	// the segment anchor. A zero-sum segment degenerates to uniform zero
	// rather than a division fault.
	revenue := make(map[string]float64)
	for seg, segScores := range scores {
		var sum float64
		for _, s := range segScores {
			sum += s
		}
		if sum <= 0 {
			zap.L().Warn("allocate: segment score sum is zero, assigning uniform zero",
				zap.String("segment", string(seg)),
			)
			continue
		}
		anchor := anchorBySegment[seg]
		for iso3, s := range segScores {
			revenue[iso3] = anchor * (s / sum)
		}
	}

	var grandTotal float64
	for _, r := range revenue {
		grandTotal += r
	}

	// Pass 2: walk the full taxonomy so every country appears exactly
	// once, with zero revenue where nothing was allocated.
	result := &model.Result{
		Rows:       make([]model.Row, 0, len(countries)),
		Anchors:    anchorBySegment,
		GrandTotal: grandTotal,
	}
	for _, c := range countries {
		rev := revenue[c.ISO3]

		var share float64
		if grandTotal > 0 {
			share = rev / grandTotal
		}
		if share > result.MaxShare {
			result.MaxShare = share
		}

		pop, _ := ind.Population.Value(c.ISO3)

		result.Rows = append(result.Rows, model.Row{
			ISO3:            c.ISO3,
			Name:            c.Name,
			Region:          c.Region,
			Segment:         c.Segment,
			RevenueMillions: rev,
			Share:           share,
			Population:      pop,
			FlagKey:         c.FlagKey(),
			Office:          e.overrides.IsOffice(c.ISO3),
			Hub:             e.overrides.IsHub(c.ISO3),
			NearZero:        e.overrides.IsNearZero(c.ISO3),
		})
	}

	zap.L().Info("allocate: allocation computed",
		zap.Int("countries", len(result.Rows)),
		zap.Float64("grand_total_millions", result.GrandTotal),
		zap.Float64("max_share", result.MaxShare),
	)

	return result
}
