// Package server exposes the ledger service over HTTP. Handlers only parse
// requests, call the ledger layer, and translate its errors to status codes;
// no business rules live here.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/acmebank/transactions/internal/ledger"
)

type Server struct {
	svc       *ledger.Service
	startTime time.Time
}

func New(svc *ledger.Service) *Server {
	return &Server{svc: svc, startTime: time.Now()}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.health)

	mux.HandleFunc("GET /transactions", s.listTransactions)
	mux.HandleFunc("POST /transactions", s.createTransaction)
	mux.HandleFunc("GET /transactions/{id}", s.getTransaction)
	mux.HandleFunc("PUT /transactions/{id}", s.updateTransaction)
	mux.HandleFunc("DELETE /transactions/{id}", s.deleteTransaction)
	mux.HandleFunc("POST /transactions/{id}/deactivate", s.deactivateTransaction)

	mux.HandleFunc("GET /accounts/{id}/transactions", s.accountTransactions)
	mux.HandleFunc("GET /reports", s.report)

	return mux
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"uptime":    time.Since(s.startTime).String(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		return 0, ledger.ErrInvalidID
	}
	return uint(id), nil
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	if flag := r.URL.Query().Get("active"); flag != "" {
		active, err := strconv.ParseBool(flag)
		if err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid active flag %q", flag))
			return
		}
		ts, err := s.svc.FindByActive(active)
		if err != nil {
			writeErr(w, statusFor(err), err)
			return
		}
		writeJSON(w, http.StatusOK, ts)
		return
	}

	ts, err := s.svc.FindAll()
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req ledger.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	rec, err := s.svc.Create(&req)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.svc.FindByID(id)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	if rec == nil {
		writeErr(w, http.StatusNotFound, ledger.ErrTransactionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	var req ledger.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	rec, err := s.svc.Update(id, &req)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.Delete(id); err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deactivateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	if err := s.svc.Deactivate(id); err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) accountTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err)
		return
	}
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid start date: %w", err))
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid end date: %w", err))
		return
	}
	ts, err := s.svc.FindByAccountAndCreatedAtBetween(id, start, end)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	customerID, err := strconv.ParseUint(r.URL.Query().Get("customer"), 10, 32)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid customer id"))
		return
	}
	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid start date: %w", err))
		return
	}
	end, err := parseDate(r.URL.Query().Get("end"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid end date: %w", err))
		return
	}
	rows, err := s.svc.Report(uint(customerID), start, end)
	if err != nil {
		writeErr(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
