// Package http exposes the session over a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fokus/internal/cache"
	"fokus/internal/log"
	"fokus/internal/session"
)

const viewCacheTTL = 30 * time.Second

type Server struct {
	http.Server
	session     *session.Session
	logger      *log.Logger
	rateLimiter *rateLimiter

	// Derived views are cheap but hot; a short TTL keeps the dashboard
	// date-correct around midnight without a clock-watching invalidator.
	dashboardCache *cache.LRUCache[session.DashboardView]
	historyCache   *cache.LRUCache[session.HistoryView]
	analysisCache  *cache.LRUCache[session.AnalysisView]
	cacheManager   *cache.Manager
	metrics        serverMetrics

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, sess *session.Session, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Nop()
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		session:        sess,
		logger:         logger.WithComponent(log.ComponentHTTP),
		rateLimiter:    newRateLimiter(),
		dashboardCache: cache.NewLRUCache[session.DashboardView](4, viewCacheTTL),
		historyCache:   cache.NewLRUCache[session.HistoryView](8, viewCacheTTL),
		analysisCache:  cache.NewLRUCache[session.AnalysisView](8, viewCacheTTL),
		cacheManager:   cache.NewManager(),
	}

	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.Register(s.historyCache)
	s.cacheManager.Register(s.analysisCache)
	s.cacheManager.StartCleanup(5 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/dashboard", s.withMiddleware(s.handleDashboard))
	mux.HandleFunc("GET /api/history", s.withMiddleware(s.handleHistory))
	mux.HandleFunc("GET /api/analysis", s.withMiddleware(s.handleAnalysis))

	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleCreateTransaction))

	mux.HandleFunc("GET /api/settings", s.withMiddleware(s.handleGetSettings))
	mux.HandleFunc("PUT /api/settings/limit", s.withMiddleware(s.handleSetLimit))
	mux.HandleFunc("PUT /api/settings/motivation", s.withMiddleware(s.handleSetMotivation))
	mux.HandleFunc("PUT /api/settings/notification", s.withMiddleware(s.handleSetNotification))

	mux.HandleFunc("PUT /api/dream", s.withMiddleware(s.handleSetDream))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleListCategories))
	mux.HandleFunc("POST /api/categories", s.withMiddleware(s.handleAddCategory))
	mux.HandleFunc("DELETE /api/categories/{index}", s.withMiddleware(s.handleDeleteCategory))

	mux.HandleFunc("POST /api/reset", s.withMiddleware(s.handleReset))

	return s
}

// invalidateViews drops every cached view. Called on each mutation; the
// document is small enough that recomputing beats tracking what changed.
func (s *Server) invalidateViews() {
	s.dashboardCache.Purge()
	s.historyCache.Purge()
	s.analysisCache.Purge()
}

// withMiddleware adds security headers, rate limiting, request IDs and
// request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := clientIP(r)
		requestID := generateRequestID()
		s.metrics.requestsTotal.Add(1)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		if isMutation(r.Method) && !s.rateLimiter.allow(clientIP) {
			s.metrics.rateLimitedTotal.Add(1)
			s.metrics.observeStatus(http.StatusTooManyRequests)
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldRequestID, requestID,
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)
		s.metrics.observeStatus(rw.statusCode)

		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds(),
			log.FieldClientIP, clientIP)
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
