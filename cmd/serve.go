package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sj-alumni/directory-cli/internal/match"
	"github.com/sj-alumni/directory-cli/internal/query"
	"github.com/sj-alumni/directory-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the directory HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(st),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(st store.Store) http.Handler {
	engine := query.NewEngine(st)
	matcher := match.NewEngine(st, cfg.Match)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			writeError(w, http.StatusBadRequest, "query parameter q is required")
			return
		}
		opts := query.Options{
			IncludeInactive: r.URL.Query().Get("include_inactive") == "true",
		}
		resp, err := engine.SearchWithOptions(r.Context(), q, opts)
		if err != nil {
			zap.L().Error("search failed", zap.String("query", q), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "search failed")
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/members/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid member id")
			return
		}
		m, err := st.GetMember(r.Context(), id)
		if err != nil {
			zap.L().Error("get member failed", zap.Int64("member_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		if m == nil {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		writeJSON(w, http.StatusOK, m)
	})

	r.Get("/members/{id}/history", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid member id")
			return
		}
		entries, err := st.GetChangeLog(r.Context(), id, 100)
		if err != nil {
			zap.L().Error("get history failed", zap.Int64("member_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, entries)
	})

	r.Get("/duplicates", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = n
		}
		pairs, err := matcher.FindPotentialDuplicates(r.Context(), limit)
		if err != nil {
			zap.L().Error("find duplicates failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, pairs)
	})

	r.Post("/merge", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PrimaryID    int64   `json:"primary_id"`
			DuplicateIDs []int64 `json:"duplicate_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.PrimaryID == 0 || len(req.DuplicateIDs) == 0 {
			writeError(w, http.StatusBadRequest, "primary_id and duplicate_ids are required")
			return
		}
		result, err := matcher.MergeDuplicates(r.Context(), req.PrimaryID, req.DuplicateIDs)
		if err != nil {
			zap.L().Error("merge failed", zap.Int64("primary_id", req.PrimaryID), zap.Error(err))
			writeError(w, http.StatusUnprocessableEntity, eris.Cause(err).Error())
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := st.Stats(r.Context())
		if err != nil {
			zap.L().Error("stats failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
