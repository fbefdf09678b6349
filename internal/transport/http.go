package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Options configures the HTTP router.
type Options struct {
	// Server is the MCP server every session is bound to.
	Server *sdkmcp.Server
	// Stateless disables Mcp-Session-Id tracking in the streamable transport.
	Stateless      bool
	SessionTimeout time.Duration
	// Metrics serves /metrics when set.
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewRouter creates the HTTP router: the streamable MCP endpoint, a health
// check and, optionally, Prometheus metrics.
func NewRouter(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return opts.Server },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      opts.Stateless,
			SessionTimeout: opts.SessionTimeout,
		},
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(SessionMiddleware)

	r.Handle("/mcp", mcpHandler)
	r.Handle("/mcp/*", mcpHandler)
	r.Get("/health", handleHealth)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requestLogger logs one debug line per HTTP request.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !logger.Enabled(r.Context(), slog.LevelDebug) {
				next.ServeHTTP(w, r)
				return
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			sessionID, _ := SessionIDFromContext(r.Context())
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
				"session_id", sessionID,
			)
		})
	}
}
