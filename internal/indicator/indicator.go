// Package indicator fetches the economic indicator feeds and reduces each
// to a per-country latest-known-value lookup.
package indicator

import (
	"math"

	"github.com/sells-group/revenue-map/internal/model"
	"github.com/sells-group/revenue-map/pkg/worldbank"
)

// World Bank indicator codes for the five scoring inputs and the
// population auxiliary.
const (
	CodeGDP        = "NY.GDP.MKTP.CD"    // GDP, current US$
	CodeMarketCap  = "CM.MKT.LCAP.GD.ZS" // market capitalization of listed companies, % of GDP
	CodeCredit     = "FS.AST.PRVT.GD.ZS" // domestic credit to private sector, % of GDP
	CodeGDPPerCap  = "NY.GDP.PCAP.CD"    // GDP per capita, current US$
	CodeInternet   = "IT.NET.USER.ZS"    // individuals using the internet, % of population
	CodePopulation = "SP.POP.TOTL"       // total population
)

// Reduce collapses raw observations to the most recent non-null, finite
// value per country. Null and non-finite readings are excluded from the
// reduction rather than treated as zero. When a country has several
// observations in the same maximum year, the last one encountered wins;
// source data is not expected to exhibit this case.
func Reduce(obs []worldbank.Observation) model.Series {
	out := make(model.Series)
	for _, o := range obs {
		if o.Value == nil || math.IsNaN(*o.Value) || math.IsInf(*o.Value, 0) {
			continue
		}
		if cur, ok := out[o.ISO3]; ok && o.Year < cur.Year {
			continue
		}
		out[o.ISO3] = model.Latest{Year: o.Year, Value: *o.Value}
	}
	return out
}
