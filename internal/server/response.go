package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acmebank/transactions/internal/ledger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// statusFor maps the ledger's error taxonomy onto HTTP statuses: bad input
// is 400, missing entities 404, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNilRequest), errors.Is(err, ledger.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrTransactionTypeNotFound),
		errors.Is(err, ledger.ErrAccountNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
