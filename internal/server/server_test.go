package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/acmebank/transactions/internal/ledger"
	"github.com/acmebank/transactions/internal/storage"
)

func newTestServer(t *testing.T) (http.Handler, storage.Account, storage.Customer) {
	t.Helper()
	db, err := storage.NewDatabase(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	customer := storage.Customer{FirstName: "Jane", LastName: "Roe", Active: true}
	if err := db.SaveCustomer(&customer); err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	accountType := storage.AccountType{Name: "CHECKING", Active: true}
	if err := db.SaveAccountType(&accountType); err != nil {
		t.Fatalf("seed account type: %v", err)
	}
	account := storage.Account{
		Number:         "ACC-001",
		CustomerID:     customer.ID,
		AccountTypeID:  accountType.ID,
		InitialBalance: 500,
		CurrentBalance: 200,
		Active:         true,
	}
	if err := db.SaveAccount(&account); err != nil {
		t.Fatalf("seed account: %v", err)
	}

	return New(ledger.NewService(db)).Router(), account, customer
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestCreateTransaction(t *testing.T) {
	h, account, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/transactions", ledger.PostRequest{
		AccountID: account.ID, Amount: -50, Active: true,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var rec storage.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if rec.ID == 0 || rec.CurrentBalance != 150 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestCreateAgainstUnknownAccount(t *testing.T) {
	h, account, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/transactions", ledger.PostRequest{
		AccountID: account.ID + 100, Amount: 10, Active: true,
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestGetUnknownTransaction(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/transactions/9999", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}

	rr = doJSON(t, h, http.MethodGet, "/transactions/abc", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad id, got %d", rr.Code)
	}
}

func TestUpdateTransaction(t *testing.T) {
	h, account, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/transactions", ledger.PostRequest{
		AccountID: account.ID, Amount: 10, Active: true,
	})
	var rec storage.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rr = doJSON(t, h, http.MethodPut, fmt.Sprintf("/transactions/%d", rec.ID), ledger.PostRequest{
		AccountID: account.ID, Amount: -10, CurrentBalance: 42, Active: true,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var updated storage.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.ID != rec.ID || updated.CurrentBalance != 42 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	rr = doJSON(t, h, http.MethodPut, "/transactions/9999", ledger.PostRequest{
		AccountID: account.ID, Amount: -10,
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rr.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	h, account, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/transactions", ledger.PostRequest{
		AccountID: account.ID, Amount: 10, Active: true,
	})
	var rec storage.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rr = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/transactions/%d", rec.ID), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}

	// Deleting an unknown id stays a no-op.
	rr = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/transactions/%d", rec.ID), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for repeat delete, got %d", rr.Code)
	}
}

func TestDeactivateTransaction(t *testing.T) {
	h, account, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/transactions", ledger.PostRequest{
		AccountID: account.ID, Amount: 10, Active: true,
	})
	var rec storage.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	rr = doJSON(t, h, http.MethodPost, fmt.Sprintf("/transactions/%d/deactivate", rec.ID), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/transactions/%d", rec.ID), nil)
	var stored storage.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &stored); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stored.Active {
		t.Fatal("expected active flag off after deactivate")
	}

	rr = doJSON(t, h, http.MethodPost, "/transactions/9999/deactivate", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rr.Code)
	}
}

func TestReportEndpoint(t *testing.T) {
	h, account, customer := newTestServer(t)

	for _, amount := range []int64{-50, 75} {
		rr := doJSON(t, h, http.MethodPost, "/transactions", ledger.PostRequest{
			AccountID: account.ID, Amount: amount, Active: true,
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d", rr.Code)
		}
	}

	today := time.Now().Format("2006-01-02")
	rr := doJSON(t, h, http.MethodGet,
		fmt.Sprintf("/reports?customer=%d&start=%s&end=%s", customer.ID, today, today), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var rows []ledger.ReportRow
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two rows, got %d", len(rows))
	}

	rr = doJSON(t, h, http.MethodGet, "/reports?customer=abc&start="+today+"&end="+today, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad customer id, got %d", rr.Code)
	}
}

func TestListTransactionsByActive(t *testing.T) {
	h, account, _ := newTestServer(t)

	for _, active := range []bool{true, false} {
		rr := doJSON(t, h, http.MethodPost, "/transactions", ledger.PostRequest{
			AccountID: account.ID, Amount: 10, Active: active,
		})
		if rr.Code != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d", rr.Code)
		}
	}

	rr := doJSON(t, h, http.MethodGet, "/transactions?active=true", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var ts []storage.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &ts); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(ts) != 1 || !ts[0].Active {
		t.Fatalf("expected one active transaction, got %+v", ts)
	}
}
