package taxonomy

import "github.com/sells-group/revenue-map/internal/model"

// SegmentOf maps a UN region/sub-region pair to a revenue segment. The
// mapping is a fixed business rule: the Middle East ("Western Asia") is
// folded into EMEA, everything else in Asia plus Oceania is APAC. Unknown
// regions return the empty segment, which excludes the country from
// allocation.
func SegmentOf(region, subRegion string) model.Segment {
	switch region {
	case "Americas":
		return model.SegmentAmericas
	case "Europe", "Africa":
		return model.SegmentEMEA
	case "Asia":
		if subRegion == "Western Asia" {
			return model.SegmentEMEA
		}
		return model.SegmentAPAC
	case "Oceania":
		return model.SegmentAPAC
	default:
		return ""
	}
}
