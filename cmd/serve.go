package main

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/revenue-map/internal/store"
)

//go:embed web
var webFS embed.FS

var (
	servePort    int
	serveCompute bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the allocation API and choropleth map",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if serveCompute {
			if err := computeAndSave(ctx, st); err != nil {
				return err
			}
		}

		r := buildRouter(st, cfg.Geo.GeoJSONPath)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutCtx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// buildRouter assembles the API and map-page routes over the run store.
func buildRouter(st store.Store, geojsonPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/api/allocation", func(w http.ResponseWriter, req *http.Request) {
		run, err := st.LatestRun(req.Context())
		if err != nil {
			zap.L().Error("serve: load latest run", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load allocation"})
			return
		}
		if run == nil || run.Result == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no allocation computed yet, run `revenue-map run` first"})
			return
		}
		writeJSON(w, http.StatusOK, run.Result)
	})

	r.Get("/api/runs", func(w http.ResponseWriter, req *http.Request) {
		runs, err := st.ListRuns(req.Context(), 50)
		if err != nil {
			zap.L().Error("serve: list runs", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list runs"})
			return
		}
		writeJSON(w, http.StatusOK, runs)
	})

	r.Get("/api/countries.geojson", func(w http.ResponseWriter, req *http.Request) {
		if _, err := os.Stat(geojsonPath); err != nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no boundary file, run `revenue-map geo convert` first"})
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		http.ServeFile(w, req, geojsonPath)
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		page, err := webFS.ReadFile("web/map.html")
		if err != nil {
			http.Error(w, "map page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})

	return r
}

// computeAndSave runs the full pipeline once and persists the result, so
// the server starts with a fresh allocation.
func computeAndSave(ctx context.Context, st store.Store) error {
	p, err := initPipeline()
	if err != nil {
		return err
	}
	result, err := p.Run(ctx)
	if err != nil {
		return eris.Wrap(err, "serve: compute")
	}
	run, err := st.SaveRun(ctx, result)
	if err != nil {
		return eris.Wrap(err, "serve: save run")
	}
	zap.L().Info("allocation computed", zap.String("run_id", run.ID))
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().BoolVar(&serveCompute, "compute", false, "compute a fresh allocation before serving")
	rootCmd.AddCommand(serveCmd)
}
