package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-map/internal/export"
	"github.com/sells-group/revenue-map/internal/model"
)

var (
	exportRun    string
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored allocation run",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		var run *model.Run
		if exportRun == "latest" {
			run, err = st.LatestRun(ctx)
			if err != nil {
				return eris.Wrap(err, "export")
			}
			if run == nil {
				return eris.New("export: no runs stored yet, use `revenue-map run` first")
			}
		} else {
			run, err = st.GetRun(ctx, exportRun)
			if err != nil {
				return eris.Wrap(err, "export")
			}
		}
		if run.Result == nil {
			return eris.Errorf("export: run %s has no result", run.ID)
		}

		if err := export.WriteFile(exportOutput, exportFormat, run.Result); err != nil {
			return err
		}

		zap.L().Info("run exported",
			zap.String("run_id", run.ID),
			zap.String("path", exportOutput),
			zap.String("format", exportFormat),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRun, "run", "latest", "run ID to export, or \"latest\"")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "allocation.csv", "output path")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format: csv, json, or xlsx")
	rootCmd.AddCommand(exportCmd)
}
