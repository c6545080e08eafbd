// Package web provides the HTTP server and handlers for the spreadsheet
// analysis UI and its JSON API.
package web

import (
	"context"
	"embed"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Erenthos/excel-ui/internal/config"
	"github.com/Erenthos/excel-ui/internal/session"
	"github.com/Erenthos/excel-ui/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the spreadsheet analysis application.
type Server struct {
	cfg     *config.Config
	store   *session.Store
	limiter *session.Limiter
	router  *chi.Mux
	server  *http.Server
	started time.Time
}

// NewServer wires the router, middleware, and routes. The store and
// limiter are owned by the caller so main can share them with the
// janitor and shutdown logic.
func NewServer(cfg *config.Config, store *session.Store, limiter *session.Limiter) *Server {
	s := &Server{
		cfg:     cfg,
		store:   store,
		limiter: limiter,
		router:  chi.NewRouter(),
		started: time.Now(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		general := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(general.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Pages
	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealthz)

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(&s.cfg.Security))

		if s.cfg.Rate.Enabled {
			uploads := newRateLimiter(s.cfg.Rate.UploadLimit, time.Minute)
			r.With(uploads.middleware).Post("/upload", s.handleUpload)
			r.With(uploads.middleware).Post("/analyze", s.handleAnalyze)
		} else {
			r.Post("/upload", s.handleUpload)
			r.Post("/analyze", s.handleAnalyze)
		}

		r.Get("/status", s.handleStatus)

		r.Route("/datasets", func(r chi.Router) {
			r.Get("/", s.handleListDatasets)
			r.Route("/{datasetID}", func(r chi.Router) {
				r.Get("/", s.handleGetDataset)
				r.Get("/schema", s.handleGetSchema)
				r.Get("/summary", s.handleGetSummary)
				r.Get("/chart", s.handleGetChart)
				r.Get("/rows", s.handleGetRows)
				r.Delete("/", s.handleDeleteDataset)
			})
		})
	})
}

// Start begins listening for HTTP requests and blocks until the server
// stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("server listening", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders hardens every response. The CSP permits only
// same-origin resources plus inline script and style, which is what the
// embedded page uses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy",
					"default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from a host:port remote address. Behind a
// trusted proxy the middleware has already rewritten RemoteAddr to a
// bare IP.
func clientIP(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// rateLimiter is a token bucket rate limiter per client IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// cleanup drops visitors that have been idle for two full windows.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow consumes a token for ip if one is available.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1,
			lastReset: time.Now(),
		}
		return true
	}

	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r.RemoteAddr)) {
			w.Header().Set("Retry-After", "60")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many requests","code":"RATE001"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
