package http

import (
	"net/http"
	"time"

	"fintrack/internal/core"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var b core.Budget
	if err := decodeJSON(r, &b); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := s.budgets.Create(r.Context(), userID(r), b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	list, err := s.budgets.List(r.Context(), userID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var b core.Budget
	if err := decodeJSON(r, &b); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	b.ID = id

	updated, err := s.budgets.Update(r.Context(), userID(r), b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.budgets.Delete(r.Context(), userID(r), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.budgets.Status(r.Context(), userID(r), time.Now())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleBudgetOverall(w http.ResponseWriter, r *http.Request) {
	overall, err := s.budgets.Overall(r.Context(), userID(r), time.Now())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overall)
}
