package http

import (
	"net/http"
	"strings"

	"fintrack/internal/core"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var t core.Transaction
	if err := decodeJSON(r, &t); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := s.transactions.Create(r.Context(), userID(r), t)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := transactionFilter(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	list, err := s.transactions.List(r.Context(), userID(r), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleTransactionSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := transactionFilter(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	summary, err := s.transactions.Summary(r.Context(), userID(r), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.transactions.Delete(r.Context(), userID(r), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusNoContent, nil)
}

// transactionFilter builds a filter from the type, category, from and
// to query parameters. Absent parameters match everything.
func transactionFilter(r *http.Request) (core.TransactionFilter, error) {
	q := r.URL.Query()
	filter := core.TransactionFilter{
		Category: strings.TrimSpace(q.Get("category")),
	}

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		t := core.TransactionType(v)
		if !t.Valid() {
			return core.TransactionFilter{}, core.ErrInvalidType
		}
		filter.Type = t
	}
	if v := strings.TrimSpace(q.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.TransactionFilter{}, err
		}
		filter.From = d
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return core.TransactionFilter{}, err
		}
		filter.To = d
	}
	return filter, nil
}
