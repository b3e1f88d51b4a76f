package http

import (
	"net/http"

	"fokus/internal/log"
)

const dashboardKey = "dashboard"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if view, ok := s.dashboardCache.Get(dashboardKey); ok {
		s.metrics.viewCacheHits.Add(1)
		writeJSON(w, http.StatusOK, view)
		return
	}
	s.metrics.viewCacheMisses.Add(1)

	view := s.session.Dashboard()
	s.dashboardCache.Set(dashboardKey, view)
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	window := parseWindow(r)
	key := string(window)

	if view, ok := s.historyCache.Get(key); ok {
		s.metrics.viewCacheHits.Add(1)
		writeJSON(w, http.StatusOK, view)
		return
	}
	s.metrics.viewCacheMisses.Add(1)

	view := s.session.History(window)
	s.historyCache.Set(key, view)
	s.logger.DebugContext(r.Context(), "History computed",
		log.FieldWindow, string(window), "count", len(view.Transactions))
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	window := parseWindow(r)
	key := string(window)

	if view, ok := s.analysisCache.Get(key); ok {
		s.metrics.viewCacheHits.Add(1)
		writeJSON(w, http.StatusOK, view)
		return
	}
	s.metrics.viewCacheMisses.Add(1)

	view := s.session.Analysis(window)
	s.analysisCache.Set(key, view)
	s.logger.DebugContext(r.Context(), "Analysis computed",
		log.FieldWindow, string(window),
		log.FieldBudget, string(view.Budget.Status))
	writeJSON(w, http.StatusOK, view)
}
