package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	var b core.Bill
	if err := decodeJSON(r, &b); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	created, err := s.bills.Create(r.Context(), userID(r), b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	list, err := s.bills.List(r.Context(), userID(r), core.Today())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	b, err := s.bills.Get(r.Context(), userID(r), id, core.Today())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var b core.Bill
	if err := decodeJSON(r, &b); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	b.ID = id

	updated, err := s.bills.Update(r.Context(), userID(r), b)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if err := s.bills.Delete(r.Context(), userID(r), id); err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUpcomingBills(w http.ResponseWriter, r *http.Request) {
	list, err := s.bills.Upcoming(r.Context(), userID(r), core.Today())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handlePayBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	paid, err := s.bills.Pay(r.Context(), userID(r), id, core.Today())
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusOK, paid)
}

func (s *Server) handleUnpayBill(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	unpaid, err := s.bills.Unpay(r.Context(), userID(r), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	s.invalidateDashboard(userID(r))
	respondJSON(w, http.StatusOK, unpaid)
}
