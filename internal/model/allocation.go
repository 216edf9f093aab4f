package model

import "time"

// SegmentMedians holds the per-segment fallback values substituted for the
// four optional scoring indicators when a country lacks direct data.
type SegmentMedians struct {
	MarketCap float64 `json:"mcap"`
	Credit    float64 `json:"credit"`
	GDPPerCap float64 `json:"gdppc"`
	Internet  float64 `json:"net"`
}

// Row is the terminal per-country allocation output.
type Row struct {
	ISO3            string  `json:"iso3"`
	Name            string  `json:"name"`
	Region          string  `json:"region"`
	Segment         Segment `json:"segment,omitempty"`
	RevenueMillions float64 `json:"revenue_millions"`
	Share           float64 `json:"share"`
	Population      float64 `json:"population,omitempty"`
	FlagKey         string  `json:"flag,omitempty"`
	Office          bool    `json:"office"`
	Hub             bool    `json:"hub"`
	NearZero        bool    `json:"near_zero"`
}

// Result is a complete allocation: exactly one row per taxonomy country,
// the disclosed anchors it was normalized against, and the derived totals.
type Result struct {
	Rows       []Row               `json:"rows"`
	Anchors    map[Segment]float64 `json:"anchors"`
	GrandTotal float64             `json:"grand_total"`
	MaxShare   float64             `json:"max_share"`
}

// RowByISO3 returns the row for a country, or ok=false if absent.
func (r *Result) RowByISO3(iso3 string) (Row, bool) {
	for _, row := range r.Rows {
		if row.ISO3 == iso3 {
			return row, true
		}
	}
	return Row{}, false
}

// SegmentTotal sums allocated revenue over one segment.
func (r *Result) SegmentTotal(seg Segment) float64 {
	var total float64
	for _, row := range r.Rows {
		if row.Segment == seg {
			total += row.RevenueMillions
		}
	}
	return total
}

// RunStatus describes the lifecycle of a stored allocation run.
type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run is a persisted allocation invocation.
type Run struct {
	ID        string    `json:"id"`
	Status    RunStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	Countries int       `json:"countries"`
	Result    *Result   `json:"result,omitempty"`
}
