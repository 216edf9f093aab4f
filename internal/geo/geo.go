// Package geo converts a world-countries shapefile into the GeoJSON
// feature collection the map page joins against allocation rows by ISO3.
package geo

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// iso3FieldCandidates are the attribute names, in priority order, that
// commonly carry the ISO3 code in public world-countries shapefiles.
var iso3FieldCandidates = []string{"iso_a3", "adm0_a3", "iso3", "sov_a3"}

// nameFieldCandidates are the attribute names that carry the display name.
var nameFieldCandidates = []string{"name", "admin", "name_long"}

// LoadShapefile reads a polygon shapefile and returns one GeoJSON feature
// per record, keyed by its ISO3 attribute. Records without a usable ISO3
// code or geometry are skipped.
func LoadShapefile(path string) (*geojson.FeatureCollection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	attr := func(candidates []string) int {
		for _, c := range candidates {
			if i, ok := fieldIdx[c]; ok {
				return i
			}
		}
		return -1
	}

	iso3Idx := attr(iso3FieldCandidates)
	if iso3Idx < 0 {
		return nil, eris.Errorf("geo: shapefile %s has no ISO3 attribute", path)
	}
	nameIdx := attr(nameFieldCandidates)

	fc := &geojson.FeatureCollection{}
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		iso3 := strings.ToUpper(strings.TrimSpace(strings.TrimRight(reader.Attribute(iso3Idx), "\x00")))
		// Natural Earth marks disputed territories with "-99".
		if len(iso3) != 3 || iso3 == "-99" {
			skipped++
			continue
		}

		poly, ok := shape.(*shp.Polygon)
		if !ok {
			skipped++
			continue
		}
		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}

		props := map[string]any{"iso3": iso3}
		if nameIdx >= 0 {
			props["name"] = strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         iso3,
			Geometry:   mp,
			Properties: props,
		})
	}

	if skipped > 0 {
		zap.L().Debug("geo: skipped shapefile records", zap.Int("skipped", skipped))
	}
	zap.L().Info("geo: shapefile converted",
		zap.String("path", path),
		zap.Int("features", len(fc.Features)),
	)

	return fc, nil
}

// polygonToMultiPolygon converts a shapefile Polygon to a
// geom.MultiPolygon. Malformed parts are skipped.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("geo: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("geo: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// WriteGeoJSON writes a feature collection to path.
func WriteGeoJSON(path string, fc *geojson.FeatureCollection) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "geo: marshal feature collection")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "geo: write %s", path)
	}
	return nil
}
