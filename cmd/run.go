package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-map/internal/export"
	"github.com/sells-group/revenue-map/internal/model"
)

var (
	runOutput string
	runFormat string
	runNoSave bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute a full country revenue allocation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		p, err := initPipeline()
		if err != nil {
			return err
		}

		result, err := p.Run(ctx)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		if !runNoSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run, err := st.SaveRun(ctx, result)
			if err != nil {
				return eris.Wrap(err, "save run")
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID))
		}

		if runOutput != "" {
			if err := export.WriteFile(runOutput, runFormat, result); err != nil {
				return err
			}
			zap.L().Info("allocation exported",
				zap.String("path", runOutput),
				zap.String("format", runFormat),
			)
		}

		printSummary(result)
		return nil
	},
}

func printSummary(result *model.Result) {
	fmt.Printf("Allocated %.1fM across %d countries\n", result.GrandTotal, len(result.Rows))
	for _, seg := range model.Segments {
		fmt.Printf("  %-8s  anchor %8.1fM  allocated %8.1fM\n",
			seg, result.Anchors[seg], result.SegmentTotal(seg))
	}
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write the allocation table to this path")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "csv", "output format: csv, json, or xlsx")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "skip persisting the run to the store")
	rootCmd.AddCommand(runCmd)
}
