package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-map/internal/geo"
)

var (
	geoShapefile string
	geoOutput    string
)

var geoCmd = &cobra.Command{
	Use:   "geo",
	Short: "Country boundary geometry tooling",
}

var geoConvertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a world-countries shapefile to GeoJSON for the map page",
	RunE: func(cmd *cobra.Command, args []string) error {
		shapefile := geoShapefile
		if shapefile == "" {
			shapefile = cfg.Geo.ShapefilePath
		}
		output := geoOutput
		if output == "" {
			output = cfg.Geo.GeoJSONPath
		}
		if shapefile == "" {
			return fmt.Errorf("no shapefile given, set --shapefile or geo.shapefile_path")
		}

		fc, err := geo.LoadShapefile(shapefile)
		if err != nil {
			return err
		}
		if err := geo.WriteGeoJSON(output, fc); err != nil {
			return err
		}

		zap.L().Info("geojson written",
			zap.String("path", output),
			zap.Int("features", len(fc.Features)),
		)
		return nil
	},
}

func init() {
	geoConvertCmd.Flags().StringVar(&geoShapefile, "shapefile", "", "input shapefile path (default from config)")
	geoConvertCmd.Flags().StringVarP(&geoOutput, "output", "o", "", "output GeoJSON path (default from config)")

	geoCmd.AddCommand(geoConvertCmd)
	rootCmd.AddCommand(geoCmd)
}
