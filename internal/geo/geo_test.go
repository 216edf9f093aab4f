package geo

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squarePolygon(x, y float64) *shp.Polygon {
	return &shp.Polygon{
		NumParts:  1,
		NumPoints: 5,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: x, Y: y},
			{X: x, Y: y + 1},
			{X: x + 1, Y: y + 1},
			{X: x + 1, Y: y},
			{X: x, Y: y},
		},
	}
}

func writeTestShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "countries.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	defer w.Close()

	w.SetFields([]shp.Field{
		shp.StringField("ISO_A3", 3),
		shp.StringField("NAME", 64),
	})

	rows := []struct {
		iso3 string
		name string
	}{
		{"FRA", "France"},
		{"-99", "Disputed"},
		{"JPN", "Japan"},
	}
	for i, r := range rows {
		w.Write(squarePolygon(float64(i*2), 0))
		require.NoError(t, w.WriteAttribute(i, 0, r.iso3))
		require.NoError(t, w.WriteAttribute(i, 1, r.name))
	}

	return path
}

func TestLoadShapefile(t *testing.T) {
	path := writeTestShapefile(t)

	fc, err := LoadShapefile(path)
	require.NoError(t, err)

	// The -99 disputed record is skipped.
	require.Len(t, fc.Features, 2)
	assert.Equal(t, "FRA", fc.Features[0].ID)
	assert.Equal(t, "France", fc.Features[0].Properties["name"])
	assert.Equal(t, "JPN", fc.Features[1].ID)
	assert.NotNil(t, fc.Features[0].Geometry)
}

func TestLoadShapefile_MissingFile(t *testing.T) {
	_, err := LoadShapefile(filepath.Join(t.TempDir(), "nope.shp"))
	require.Error(t, err)
}

func TestPolygonToMultiPolygon(t *testing.T) {
	mp := polygonToMultiPolygon(squarePolygon(0, 0))
	require.NotNil(t, mp)
	assert.Equal(t, 1, mp.NumPolygons())
	assert.Equal(t, 4326, mp.SRID())

	assert.Nil(t, polygonToMultiPolygon(nil))
	assert.Nil(t, polygonToMultiPolygon(&shp.Polygon{}))
}

func TestWriteGeoJSON(t *testing.T) {
	path := writeTestShapefile(t)
	fc, err := LoadShapefile(path)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "countries.geojson")
	require.NoError(t, WriteGeoJSON(out, fc))

	fc2, err := LoadShapefile(path) // unchanged source still parses
	require.NoError(t, err)
	assert.Len(t, fc2.Features, len(fc.Features))
}
