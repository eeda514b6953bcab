package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

// defaultProjectionMonths is the horizon used when the query parameter
// is absent.
const defaultProjectionMonths = 12

type movementRequest struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
}

type transferRequest struct {
	FromID      int64      `json:"fromId"`
	ToID        int64      `json:"toId"`
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
}

func (s *Server) handleCreateSaving(w http.ResponseWriter, r *http.Request) {
	var acc core.SavingsAccount
	if err := decodeJSON(r, &acc); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := s.savings.Create(r.Context(), userID(r), acc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListSavings(w http.ResponseWriter, r *http.Request) {
	list, err := s.savings.List(r.Context(), userID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSaving(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	acc, err := s.savings.Get(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, acc)
}

func (s *Server) handleUpdateSaving(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var acc core.SavingsAccount
	if err := decodeJSON(r, &acc); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	acc.ID = id

	updated, err := s.savings.Update(r.Context(), userID(r), acc)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSaving(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.savings.Delete(r.Context(), userID(r), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	s.handleMovement(w, r, s.savings.Deposit)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	s.handleMovement(w, r, s.savings.Withdraw)
}

// handleMovement is the shared deposit/withdraw handler.
func (s *Server) handleMovement(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, userID, id int64, amount core.Money, description string) (core.SavingsAccount, error)) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var req movementRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	acc, err := apply(r.Context(), userID(r), id, req.Amount, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusOK, acc)
}

func (s *Server) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.savings.Transfer(r.Context(), userID(r), req.FromID, req.ToID, req.Amount, req.Description); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSavingTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	history, err := s.savings.Transactions(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	months := defaultProjectionMonths
	if v := strings.TrimSpace(r.URL.Query().Get("months")); v != "" {
		months, err = strconv.Atoi(v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: core.ErrInvalidHorizon.Error()})
			return
		}
	}

	entries, err := s.savings.Projection(r.Context(), userID(r), id, months, core.Today())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}
