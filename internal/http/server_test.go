package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := storage.NewMemoryStore()
	authSvc := auth.NewService(store, time.Hour)
	transactions := services.NewTransactionService(store, nil)
	budgets := services.NewBudgetService(store, store)
	bills := services.NewBillService(store)
	savings := services.NewSavingService(store)

	s := NewServer(":0", authSvc, transactions, budgets, bills, savings)
	ts := httptest.NewServer(s.Server.Handler)
	t.Cleanup(func() {
		ts.Close()
		if err := s.Shutdown(context.Background()); err != nil {
			t.Errorf("shutdown: %v", err)
		}
	})
	return ts
}

// doJSON issues a request with an optional bearer token and JSON body,
// returning the status code and decoded body.
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, data
}

func registerAndLogin(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	status, _ := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "user@example.com",
		"name":     "User",
		"password": "correct horse",
	})
	if status != http.StatusCreated {
		t.Fatalf("register status = %d", status)
	}
	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "correct horse",
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d: %s", status, body)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil || login.Token == "" {
		t.Fatalf("login response = %s", body)
	}
	return login.Token
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		status, _ := doJSON(t, ts, http.MethodGet, path, "", nil)
		if status != http.StatusOK {
			t.Errorf("%s status = %d", path, status)
		}
	}
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	// Duplicate registration conflicts
	status, _ := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    "user@example.com",
		"name":     "Again",
		"password": "another pass",
	})
	if status != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", status)
	}

	// Wrong password is rejected
	status, _ = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "wrong",
	})
	if status != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", status)
	}

	// Protected routes require a token
	status, _ = doJSON(t, ts, http.MethodGet, "/api/transactions", "", nil)
	if status != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", status)
	}

	status, _ = doJSON(t, ts, http.MethodPost, "/api/auth/logout", token, nil)
	if status != http.StatusNoContent {
		t.Errorf("logout status = %d, want 204", status)
	}
	status, _ = doJSON(t, ts, http.MethodGet, "/api/transactions", token, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("post-logout status = %d, want 401", status)
	}
}

func TestTransactionEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	status, body := doJSON(t, ts, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount":   "120.50",
		"type":     "expense",
		"category": "groceries",
		"date":     "2025-03-10",
	})
	if status != http.StatusCreated {
		t.Fatalf("create status = %d: %s", status, body)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
		t.Fatalf("create response = %s", body)
	}

	// Negative amount is rejected
	status, _ = doJSON(t, ts, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount":   "-5",
		"type":     "expense",
		"category": "groceries",
		"date":     "2025-03-10",
	})
	if status != http.StatusBadRequest {
		t.Errorf("invalid create status = %d, want 400", status)
	}

	status, _ = doJSON(t, ts, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount":   "2000",
		"type":     "income",
		"category": "salary",
		"date":     "2025-03-01",
	})
	if status != http.StatusCreated {
		t.Fatalf("create income status = %d", status)
	}

	status, body = doJSON(t, ts, http.MethodGet, "/api/transactions?type=expense", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d", status)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err != nil || len(list) != 1 {
		t.Fatalf("filtered list = %s", body)
	}

	status, body = doJSON(t, ts, http.MethodGet, "/api/transactions/summary", token, nil)
	if status != http.StatusOK {
		t.Fatalf("summary status = %d", status)
	}
	var summary struct {
		Balance json.Number `json:"balance"`
	}
	if err := json.Unmarshal(body, &summary); err != nil {
		t.Fatalf("summary = %s", body)
	}
	if summary.Balance.String() != "1879.50" {
		t.Errorf("balance = %s, want 1879.50", summary.Balance)
	}

	status, _ = doJSON(t, ts, http.MethodDelete, fmt.Sprintf("/api/transactions/%d", created.ID), token, nil)
	if status != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", status)
	}
	status, _ = doJSON(t, ts, http.MethodDelete, "/api/transactions/999", token, nil)
	if status != http.StatusNotFound {
		t.Errorf("delete missing status = %d, want 404", status)
	}
}

func TestBudgetEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	status, body := doJSON(t, ts, http.MethodPost, "/api/budgets", token, map[string]any{
		"category":    "groceries",
		"budgetLimit": "400",
		"period":      "monthly",
	})
	if status != http.StatusCreated {
		t.Fatalf("create budget status = %d: %s", status, body)
	}

	// Spend inside the current month so it lands in the window
	today := time.Now().UTC().Format("2006-01-02")
	status, _ = doJSON(t, ts, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount":   "380",
		"type":     "expense",
		"category": "groceries",
		"date":     today,
	})
	if status != http.StatusCreated {
		t.Fatalf("create transaction status = %d", status)
	}

	status, body = doJSON(t, ts, http.MethodGet, "/api/budgets/status", token, nil)
	if status != http.StatusOK {
		t.Fatalf("status endpoint = %d", status)
	}
	var views []struct {
		Spent json.Number `json:"spent"`
		Tier  string      `json:"tier"`
	}
	if err := json.Unmarshal(body, &views); err != nil || len(views) != 1 {
		t.Fatalf("status body = %s", body)
	}
	if views[0].Spent.String() != "380.00" || views[0].Tier != "critical" {
		t.Errorf("status view = %+v", views[0])
	}

	status, body = doJSON(t, ts, http.MethodGet, "/api/budgets/overall", token, nil)
	if status != http.StatusOK {
		t.Fatalf("overall endpoint = %d", status)
	}
	var overall struct {
		OverallPercentage int `json:"overallPercentage"`
	}
	if err := json.Unmarshal(body, &overall); err != nil {
		t.Fatalf("overall body = %s", body)
	}
	if overall.OverallPercentage != 95 {
		t.Errorf("overall percentage = %d, want 95", overall.OverallPercentage)
	}
}

func TestBillEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	status, body := doJSON(t, ts, http.MethodPost, "/api/bills", token, map[string]any{
		"name":     "Rent",
		"amount":   "900",
		"dueDate":  "2025-01-01",
		"category": "housing",
	})
	if status != http.StatusCreated {
		t.Fatalf("create bill status = %d: %s", status, body)
	}
	var bill struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &bill); err != nil {
		t.Fatalf("bill body = %s", body)
	}

	// Past due date reads back as overdue
	status, body = doJSON(t, ts, http.MethodGet, "/api/bills", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list bills status = %d", status)
	}
	var bills []struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &bills); err != nil || len(bills) != 1 {
		t.Fatalf("bills body = %s", body)
	}
	if bills[0].Status != "overdue" {
		t.Errorf("bill status = %s, want overdue", bills[0].Status)
	}

	status, body = doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/bills/%d/pay", bill.ID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("pay status = %d: %s", status, body)
	}
	var paid struct {
		Status   string `json:"status"`
		PaidDate string `json:"paidDate"`
	}
	if err := json.Unmarshal(body, &paid); err != nil {
		t.Fatalf("paid body = %s", body)
	}
	if paid.Status != "paid" || paid.PaidDate == "" {
		t.Errorf("paid bill = %+v", paid)
	}

	status, _ = doJSON(t, ts, http.MethodGet, "/api/bills/upcoming", token, nil)
	if status != http.StatusOK {
		t.Fatalf("upcoming status = %d", status)
	}

	status, body = doJSON(t, ts, http.MethodPost, fmt.Sprintf("/api/bills/%d/unpay", bill.ID), token, nil)
	if status != http.StatusOK {
		t.Fatalf("unpay status = %d", status)
	}
	var unpaid struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &unpaid); err != nil {
		t.Fatalf("unpaid body = %s", body)
	}
	if unpaid.Status == "paid" {
		t.Errorf("unpaid bill still paid")
	}
}

func TestSavingEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	status, body := doJSON(t, ts, http.MethodPost, "/api/savings", token, map[string]any{
		"name":         "Emergency fund",
		"accountType":  "savings",
		"balance":      "1000",
		"interestRate": "12",
	})
	if status != http.StatusCreated {
		t.Fatalf("create saving status = %d: %s", status, body)
	}
	var fund struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &fund); err != nil || fund.ID == 0 {
		t.Fatalf("saving body = %s", body)
	}
	base := fmt.Sprintf("/api/savings/%d", fund.ID)

	status, _ = doJSON(t, ts, http.MethodPost, base+"/deposit", token, map[string]any{
		"amount": "250", "description": "bonus",
	})
	if status != http.StatusOK {
		t.Fatalf("deposit status = %d", status)
	}

	// Overdrawing is rejected without changing the balance
	status, _ = doJSON(t, ts, http.MethodPost, base+"/withdraw", token, map[string]any{
		"amount": "99999",
	})
	if status != http.StatusUnprocessableEntity {
		t.Errorf("overdraw status = %d, want 422", status)
	}

	status, body = doJSON(t, ts, http.MethodGet, base, token, nil)
	if status != http.StatusOK {
		t.Fatalf("get saving status = %d", status)
	}
	var acc struct {
		Balance json.Number `json:"balance"`
	}
	if err := json.Unmarshal(body, &acc); err != nil {
		t.Fatalf("saving body = %s", body)
	}
	if acc.Balance.String() != "1250.00" {
		t.Errorf("balance = %s, want 1250.00", acc.Balance)
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/savings", token, map[string]any{
		"name": "Vacation", "accountType": "savings", "balance": "0",
	})
	if status != http.StatusCreated {
		t.Fatalf("create second saving status = %d", status)
	}
	var vacation struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &vacation); err != nil || vacation.ID == 0 {
		t.Fatalf("second saving body = %s", body)
	}
	status, _ = doJSON(t, ts, http.MethodPost, "/api/savings/transfer", token, map[string]any{
		"fromId": fund.ID, "toId": vacation.ID, "amount": "250",
	})
	if status != http.StatusNoContent {
		t.Errorf("transfer status = %d, want 204", status)
	}

	status, body = doJSON(t, ts, http.MethodGet, base+"/transactions", token, nil)
	if status != http.StatusOK {
		t.Fatalf("history status = %d", status)
	}
	var history []json.RawMessage
	if err := json.Unmarshal(body, &history); err != nil || len(history) != 2 {
		t.Fatalf("history = %s", body)
	}

	status, body = doJSON(t, ts, http.MethodGet, base+"/projection?months=2", token, nil)
	if status != http.StatusOK {
		t.Fatalf("projection status = %d: %s", status, body)
	}
	var entries []struct {
		Month    string      `json:"month"`
		Interest json.Number `json:"interest"`
	}
	if err := json.Unmarshal(body, &entries); err != nil || len(entries) != 2 {
		t.Fatalf("projection = %s", body)
	}
	if entries[0].Interest.String() != "10.00" {
		t.Errorf("first interest = %s, want 10.00", entries[0].Interest)
	}

	status, _ = doJSON(t, ts, http.MethodGet, base+"/projection?months=0", token, nil)
	if status != http.StatusBadRequest {
		t.Errorf("zero-month projection status = %d, want 400", status)
	}
	status, _ = doJSON(t, ts, http.MethodGet, base+"/projection?months=abc", token, nil)
	if status != http.StatusBadRequest {
		t.Errorf("bad months projection status = %d, want 400", status)
	}
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts)

	status, _ := doJSON(t, ts, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": "2000", "type": "income", "category": "salary", "date": "2025-03-01",
	})
	if status != http.StatusCreated {
		t.Fatalf("create income status = %d", status)
	}
	status, _ = doJSON(t, ts, http.MethodPost, "/api/bills", token, map[string]any{
		"name": "Internet", "amount": "30", "dueDate": "2099-01-01", "category": "utilities",
	})
	if status != http.StatusCreated {
		t.Fatalf("create bill status = %d", status)
	}
	status, _ = doJSON(t, ts, http.MethodPost, "/api/savings", token, map[string]any{
		"name": "Fund", "accountType": "savings", "balance": "500",
	})
	if status != http.StatusCreated {
		t.Fatalf("create saving status = %d", status)
	}

	type dashboard struct {
		Summary struct {
			Balance json.Number `json:"balance"`
		} `json:"summary"`
		UpcomingBills []json.RawMessage `json:"upcomingBills"`
		TotalSavings  json.Number       `json:"totalSavings"`
		SavingsCount  int               `json:"savingsCount"`
	}

	status, body := doJSON(t, ts, http.MethodGet, "/api/dashboard", token, nil)
	if status != http.StatusOK {
		t.Fatalf("dashboard status = %d: %s", status, body)
	}
	var view dashboard
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("dashboard body = %s", body)
	}
	if view.Summary.Balance.String() != "2000.00" {
		t.Errorf("balance = %s, want 2000.00", view.Summary.Balance)
	}
	if len(view.UpcomingBills) != 1 || view.SavingsCount != 1 || view.TotalSavings.String() != "500.00" {
		t.Errorf("dashboard view = %+v", view)
	}

	// A write invalidates the cached view
	status, _ = doJSON(t, ts, http.MethodPost, "/api/transactions", token, map[string]any{
		"amount": "500", "type": "expense", "category": "misc", "date": "2025-03-02",
	})
	if status != http.StatusCreated {
		t.Fatalf("create expense status = %d", status)
	}
	status, body = doJSON(t, ts, http.MethodGet, "/api/dashboard", token, nil)
	if status != http.StatusOK {
		t.Fatalf("second dashboard status = %d", status)
	}
	view = dashboard{}
	if err := json.Unmarshal(body, &view); err != nil {
		t.Fatalf("second dashboard body = %s", body)
	}
	if view.Summary.Balance.String() != "1500.00" {
		t.Errorf("balance after write = %s, want 1500.00", view.Summary.Balance)
	}
}
