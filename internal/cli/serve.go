package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cliq/pkg/cache"
	cliqerrors "github.com/matzehuels/cliq/pkg/errors"
	"github.com/matzehuels/cliq/pkg/graph"
	"github.com/matzehuels/cliq/pkg/observability"
	"github.com/matzehuels/cliq/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redisURL string // optional Redis cache URL
	noCache  bool   // disable caching entirely
}

// newServeCmd creates the serve command for the HTTP evaluation API.
//
// Endpoints:
//
//	POST /v1/eval   Evaluate a program; body and response are JSON
//	GET  /healthz   Liveness probe
//
// With --redis (or redis_url in the config file) results are cached in
// Redis so multiple instances share one cache; otherwise the local file
// cache is used.
func newServeCmd() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP evaluation API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for a shared cache (e.g. redis://localhost:6379/0)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the HTTP server and blocks until ctx is cancelled.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.redisURL == "" {
		opts.redisURL = cfg.RedisURL
	}

	c, err := newServeCache(ctx, opts, logger)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newRouter(runner, logger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("Server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newServeCache picks the cache backend: Redis when configured, the local
// file cache otherwise.
func newServeCache(ctx context.Context, opts *serveOpts, logger *log.Logger) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		c, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("Using Redis cache")
		return c, nil
	}
	return newCache(false)
}

// =============================================================================
// Router
// =============================================================================

// newRouter builds the chi router with logging and hook middleware.
func newRouter(runner *pipeline.Runner, logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hookMiddleware(logger))

	r.Get("/healthz", handleHealth)
	r.Post("/v1/eval", handleEval(runner))

	return r
}

// hookMiddleware reports requests to the observability registry and logs
// completions.
func hookMiddleware(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			observability.HTTP().OnRequest(req.Context(), req.Method, req.URL.Path)

			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)

			duration := time.Since(start)
			observability.HTTP().OnResponse(req.Context(), req.Method, req.URL.Path, ww.Status(), duration)
			logger.Debug("handled request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"duration", duration)
		})
	}
}

// =============================================================================
// Handlers
// =============================================================================

// evalResponse is the JSON body returned by POST /v1/eval. Artifact bytes
// are base64-encoded by encoding/json.
type evalResponse struct {
	Canonical string            `json:"canonical"`
	Graph     graph.Graph       `json:"graph"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
	Stats     evalStats         `json:"stats"`
	Cached    evalCached        `json:"cached"`
}

type evalStats struct {
	Vertices     int   `json:"vertices"`
	Edges        int   `json:"edges"`
	EvalMillis   int64 `json:"eval_ms"`
	RenderMillis int64 `json:"render_ms"`
}

type evalCached struct {
	Eval   bool `json:"eval"`
	Render bool `json:"render"`
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEval evaluates the posted program. Engine errors (syntax, cycles,
// limits) map to 422 since the request was well-formed but the program was
// not; everything else is a 500.
func handleEval(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var opts pipeline.Options
		if err := json.NewDecoder(req.Body).Decode(&opts); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
			return
		}
		if opts.Program == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "program is required"})
			return
		}
		if err := pipeline.ValidateFormats(opts.Formats); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: string(cliqerrors.ErrCodeInvalidFormat)})
			return
		}

		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			status := http.StatusInternalServerError
			code := cliqerrors.GetCode(err)
			if code != "" {
				status = http.StatusUnprocessableEntity
			}
			writeJSON(w, status, errorResponse{Error: err.Error(), Code: string(code)})
			return
		}

		writeJSON(w, http.StatusOK, evalResponse{
			Canonical: result.Canonical,
			Graph:     result.Graph,
			Artifacts: result.Artifacts,
			Stats: evalStats{
				Vertices:     result.Stats.VertexCount,
				Edges:        result.Stats.EdgeCount,
				EvalMillis:   result.Stats.EvalTime.Milliseconds(),
				RenderMillis: result.Stats.RenderTime.Milliseconds(),
			},
			Cached: evalCached{
				Eval:   result.CacheInfo.EvalHit,
				Render: result.CacheInfo.RenderHit,
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
