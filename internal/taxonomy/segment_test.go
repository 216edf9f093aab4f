package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/revenue-map/internal/model"
)

func TestSegmentOf(t *testing.T) {
	tests := []struct {
		name      string
		region    string
		subRegion string
		want      model.Segment
	}{
		{"americas", "Americas", "South America", model.SegmentAmericas},
		{"europe", "Europe", "Western Europe", model.SegmentEMEA},
		{"africa", "Africa", "Sub-Saharan Africa", model.SegmentEMEA},
		{"middle east folds into EMEA", "Asia", "Western Asia", model.SegmentEMEA},
		{"east asia", "Asia", "Eastern Asia", model.SegmentAPAC},
		{"south asia", "Asia", "Southern Asia", model.SegmentAPAC},
		{"asia no sub-region", "Asia", "", model.SegmentAPAC},
		{"oceania", "Oceania", "Polynesia", model.SegmentAPAC},
		{"antarctica unmapped", "", "", model.Segment("")},
		{"unknown region", "Atlantis", "", model.Segment("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentOf(tt.region, tt.subRegion))
		})
	}
}
