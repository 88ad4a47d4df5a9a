package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/schedule-cli/internal/model"
	"github.com/sells-group/schedule-cli/internal/schedule"
	"github.com/sells-group/schedule-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored parse runs over a read-only JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           buildRouter(st, zap.L()),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx) //nolint:errcheck
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// projectView is a project as served by the API, with its completion.
type projectView struct {
	*model.ProjectRecord
	Completion float64 `json:"completion"`
}

type api struct {
	st  store.Store
	log *zap.Logger
}

// buildRouter wires the read-only run API.
func buildRouter(st store.Store, log *zap.Logger) http.Handler {
	a := &api{st: st, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/runs", a.listRuns)
	r.Get("/runs/latest", a.latestRun)
	r.Get("/runs/{id}", a.getRun)
	r.Get("/projects", a.listProjects)
	r.Get("/projects/{id}", a.getProject)
	r.Get("/summary", a.summary)
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func (a *api) listRuns(w http.ResponseWriter, r *http.Request) {
	filter := store.RunFilter{Source: r.URL.Query().Get("source")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		filter.Limit = n
	}

	runs, err := a.st.ListRuns(r.Context(), filter)
	if err != nil {
		a.fail(w, err)
		return
	}
	if runs == nil {
		runs = []model.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (a *api) getRun(w http.ResponseWriter, r *http.Request) {
	run, err := a.st.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (a *api) latestRun(w http.ResponseWriter, r *http.Request) {
	run, err := a.st.LatestRun(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// listProjects serves the projects of the latest run, optionally filtered
// by community or current phase (case-insensitive).
func (a *api) listProjects(w http.ResponseWriter, r *http.Request) {
	run, err := a.st.LatestRun(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}

	community := r.URL.Query().Get("community")
	phase := r.URL.Query().Get("phase")

	out := []projectView{}
	for _, p := range run.Result.Projects {
		if community != "" && !strings.EqualFold(p.Community, community) {
			continue
		}
		if phase != "" && !strings.EqualFold(p.CurrentPhase, phase) {
			continue
		}
		out = append(out, viewOf(p, run.Result.ParsedDate))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *api) getProject(w http.ResponseWriter, r *http.Request) {
	run, err := a.st.LatestRun(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	for _, p := range run.Result.Projects {
		if strings.EqualFold(p.ProjectID, id) {
			writeJSON(w, http.StatusOK, viewOf(p, run.Result.ParsedDate))
			return
		}
	}
	writeError(w, http.StatusNotFound, "project not found")
}

func (a *api) summary(w http.ResponseWriter, r *http.Request) {
	run, err := a.st.LatestRun(r.Context())
	if err != nil {
		a.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":      run.ID,
		"source":      run.Source,
		"parsed_date": run.Result.ParsedDate,
		"summary":     run.Result.Summary,
	})
}

func viewOf(p *model.ProjectRecord, now time.Time) projectView {
	return projectView{ProjectRecord: p, Completion: schedule.Completion(p.Schedule, now)}
}

func (a *api) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	a.log.Error("api request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
