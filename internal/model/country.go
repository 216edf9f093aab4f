// Package model defines the data types shared across the allocation pipeline.
package model

import "strings"

// Segment is one of the three disclosed revenue buckets.
type Segment string

const (
	SegmentAmericas Segment = "AMERICAS"
	SegmentEMEA     Segment = "EMEA"
	SegmentAPAC     Segment = "APAC"
)

// Segments lists the three segments in reporting order.
var Segments = []Segment{SegmentAmericas, SegmentEMEA, SegmentAPAC}

// Country is a normalized taxonomy record. Segment is derived from the UN
// region/sub-region at load time; an empty Segment means the country is
// excluded from revenue allocation but still appears in output with zero
// values.
type Country struct {
	ISO3      string  `json:"iso3"`
	Alpha2    string  `json:"alpha2,omitempty"`
	Name      string  `json:"name"`
	Region    string  `json:"region"`
	SubRegion string  `json:"sub_region"`
	Segment   Segment `json:"segment,omitempty"`
}

// FlagKey returns the lowercase two-letter key used for flag imagery.
// Falls back to the first two letters of the ISO3 code when the taxonomy
// carries no alpha-2 code.
func (c Country) FlagKey() string {
	if c.Alpha2 != "" {
		return strings.ToLower(c.Alpha2)
	}
	if len(c.ISO3) >= 2 {
		return strings.ToLower(c.ISO3[:2])
	}
	return ""
}

// Allocatable reports whether the country participates in revenue
// allocation.
func (c Country) Allocatable() bool {
	return c.Segment != ""
}
