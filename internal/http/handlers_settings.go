package http

import (
	"net/http"
	"strconv"

	"fokus/internal/core"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Settings())
}

type setLimitRequest struct {
	Limit string `json:"limit"`
}

func (s *Server) handleSetLimit(w http.ResponseWriter, r *http.Request) {
	var req setLimitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cents, err := core.ParseNonNegativeCents(req.Limit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid limit: "+req.Limit)
		return
	}

	if err := s.session.SetMonthlyLimit(r.Context(), core.Money{Cents: cents}); err != nil {
		s.mutationError(w, err)
		return
	}

	s.invalidateViews()
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

type setMotivationRequest struct {
	Warning string `json:"warning"`
	Danger  string `json:"danger"`
}

func (s *Server) handleSetMotivation(w http.ResponseWriter, r *http.Request) {
	var req setMotivationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.session.SetMotivation(r.Context(), sanitizeInput(req.Warning), sanitizeInput(req.Danger)); err != nil {
		s.mutationError(w, err)
		return
	}

	s.invalidateViews()
	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

type setNotificationRequest struct {
	Enabled bool   `json:"enabled"`
	Time    string `json:"time"`
}

func (s *Server) handleSetNotification(w http.ResponseWriter, r *http.Request) {
	var req setNotificationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	n := core.Notification{Enabled: req.Enabled, Time: req.Time}
	if err := s.session.SetNotification(r.Context(), n); err != nil {
		s.mutationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"saved": true})
}

type setDreamRequest struct {
	Title        string `json:"title"`
	TargetAmount string `json:"target_amount"`
	TargetDate   string `json:"target_date"`
}

func (s *Server) handleSetDream(w http.ResponseWriter, r *http.Request) {
	var req setDreamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	cents, err := core.ParseNonNegativeCents(req.TargetAmount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid target amount: "+req.TargetAmount)
		return
	}

	dream := core.Dream{
		Title:        sanitizeInput(req.Title),
		TargetAmount: core.Money{Cents: cents},
		TargetDate:   core.Date(req.TargetDate),
	}
	if err := s.session.SetDream(r.Context(), dream); err != nil {
		s.mutationError(w, err)
		return
	}

	s.invalidateViews()
	writeJSON(w, http.StatusOK, map[string]any{"saved": true, "dream": dream})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.session.Settings().Categories,
	})
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req addCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	added, err := s.session.AddCategory(r.Context(), sanitizeInput(req.Name))
	if err != nil {
		s.mutationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"added":      added,
		"categories": s.session.Settings().Categories,
	})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid category index")
		return
	}

	name, err := s.session.DeleteCategory(r.Context(), index)
	if err != nil {
		s.mutationError(w, err)
		return
	}

	s.invalidateViews()
	writeJSON(w, http.StatusOK, map[string]any{
		"removed":    name,
		"categories": s.session.Settings().Categories,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Reset(r.Context()); err != nil {
		s.mutationError(w, err)
		return
	}

	s.invalidateViews()
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}
