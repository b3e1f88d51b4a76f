package http

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

// serverMetrics tracks request counters exposed on /metrics. Plain atomics,
// scraped as text; there is no metrics pipeline to feed.
type serverMetrics struct {
	requestsTotal       atomic.Int64
	responses2xx        atomic.Int64
	responses4xx        atomic.Int64
	responses5xx        atomic.Int64
	rateLimitedTotal    atomic.Int64
	transactionsCreated atomic.Int64
	viewCacheHits       atomic.Int64
	viewCacheMisses     atomic.Int64
}

func (m *serverMetrics) observeStatus(code int) {
	switch {
	case code >= 500:
		m.responses5xx.Add(1)
	case code >= 400:
		m.responses4xx.Add(1)
	case code >= 200 && code < 300:
		m.responses2xx.Add(1)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "requests_total %d\n", s.metrics.requestsTotal.Load())
	fmt.Fprintf(w, "responses_2xx %d\n", s.metrics.responses2xx.Load())
	fmt.Fprintf(w, "responses_4xx %d\n", s.metrics.responses4xx.Load())
	fmt.Fprintf(w, "responses_5xx %d\n", s.metrics.responses5xx.Load())
	fmt.Fprintf(w, "rate_limited_total %d\n", s.metrics.rateLimitedTotal.Load())
	fmt.Fprintf(w, "transactions_created_total %d\n", s.metrics.transactionsCreated.Load())
	fmt.Fprintf(w, "view_cache_hits_total %d\n", s.metrics.viewCacheHits.Load())
	fmt.Fprintf(w, "view_cache_misses_total %d\n", s.metrics.viewCacheMisses.Load())
}
