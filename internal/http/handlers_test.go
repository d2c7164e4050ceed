package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tally/internal/core"
	"tally/internal/dashboard"
	"tally/internal/notify"
	"tally/internal/store"
	"tally/internal/store/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	s := memory.New(&store.SequenceGenerator{})
	controller := dashboard.NewController(s.Transactions(), s.Appointments(), &notify.CaptureNotifier{})
	srv, err := NewServer(":0", controller)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv, s
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := get(srv, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := get(srv, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}
}

func TestSubmitTransaction(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(srv, "/transactions", url.Values{
		"type":   {"revenue"},
		"name":   {"Website Design"},
		"amount": {"2500"},
		"date":   {"2025-06-01"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	trigger := rec.Header().Get("HX-Trigger")
	for _, want := range []string{"show-notification", "transactions:changed", "metrics:refresh", "Website Design"} {
		if !strings.Contains(trigger, want) {
			t.Fatalf("HX-Trigger missing %q: %s", want, trigger)
		}
	}

	list := get(srv, "/ui/transactions?type=revenue")
	if list.Code != http.StatusOK || !strings.Contains(list.Body.String(), "Website Design") {
		t.Fatalf("list missing record: %d %s", list.Code, list.Body.String())
	}
	if !strings.Contains(list.Body.String(), "$2,500.00") {
		t.Fatalf("amount not formatted: %s", list.Body.String())
	}
}

func TestSubmitTransactionValidationFailure(t *testing.T) {
	srv, s := newTestServer(t)

	rec := postForm(srv, "/transactions", url.Values{
		"type":   {"revenue"},
		"name":   {"Bad entry"},
		"amount": {"-5"},
		"date":   {"2025-06-01"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Amount must be a positive number.") {
		t.Fatalf("missing inline error: %s", rec.Body.String())
	}

	// Store untouched.
	txs, _ := s.Transactions().List(context.Background())
	if len(txs) != 0 {
		t.Fatalf("store changed on rejected input: %+v", txs)
	}
}

func TestDeleteTransactionUnknownID(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := postForm(srv, "/transactions/delete", url.Values{"id": {"never-existed"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete of unknown id should succeed, got %d", rec.Code)
	}
}

func TestTransactionListRejectsUnknownType(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := get(srv, "/ui/transactions?type=transfer"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAppointmentFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(srv, "/appointments", url.Values{
		"title": {"Client Meeting"},
		"date":  {"2025-07-10"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}

	day := postForm(srv, "/calendar/select", url.Values{"date": {"2025-07-10"}})
	if day.Code != http.StatusOK || !strings.Contains(day.Body.String(), "Client Meeting") {
		t.Fatalf("day list missing appointment: %d %s", day.Code, day.Body.String())
	}

	other := postForm(srv, "/calendar/select", url.Values{"date": {"2025-07-11"}})
	if strings.Contains(other.Body.String(), "Client Meeting") {
		t.Fatalf("appointment leaked to another day: %s", other.Body.String())
	}
}

func TestAppointmentValidationFailure(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(srv, "/appointments", url.Values{
		"title": {"no"},
		"date":  {"2025-07-10"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Title must be at least 3 characters.") {
		t.Fatalf("missing inline error: %s", rec.Body.String())
	}
}

func TestMetricsPartial(t *testing.T) {
	srv, _ := newTestServer(t)

	postForm(srv, "/transactions", url.Values{
		"type": {"revenue"}, "name": {"Logo Design"}, "amount": {"800"}, "date": {"2025-06-01"},
	})
	postForm(srv, "/transactions", url.Values{
		"type": {"expense"}, "name": {"Office Supplies"}, "amount": {"120"}, "date": {"2025-06-02"},
	})

	rec := get(srv, "/ui/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "$800.00") || !strings.Contains(body, "$120.00") || !strings.Contains(body, "$680.00") {
		t.Fatalf("unexpected metrics: %s", body)
	}
}

func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := get(srv, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("index: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Business Dashboard") {
		t.Fatalf("unexpected page: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), core.Today().Format("2006-01-02")) {
		t.Fatalf("today's date missing from forms")
	}
}

func TestTransactionFormDialogLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := get(srv, "/ui/transaction-form")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "New transaction") {
		t.Fatalf("open add form: %d %s", rec.Code, rec.Body.String())
	}

	// A second open while the dialog is up is a conflict.
	if rec := get(srv, "/ui/appointment-form"); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for open-while-open, got %d", rec.Code)
	}

	// Cancel is one exit; the form can then reopen.
	if rec := postForm(srv, "/ui/dialog/close", url.Values{}); rec.Code != http.StatusOK {
		t.Fatalf("cancel: %d", rec.Code)
	}
	if rec := get(srv, "/ui/transaction-form"); rec.Code != http.StatusOK {
		t.Fatalf("reopen after cancel: %d", rec.Code)
	}

	// Submit is the other exit.
	rec = postForm(srv, "/transactions", url.Values{
		"type": {"revenue"}, "name": {"Website Design"}, "amount": {"2500"}, "date": {"2025-06-01"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	if rec := get(srv, "/ui/transaction-form"); rec.Code != http.StatusOK {
		t.Fatalf("reopen after submit: %d", rec.Code)
	}
}

func TestDialogCancelWithoutOpenDialog(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := postForm(srv, "/ui/dialog/close", url.Values{}); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for cancel with no dialog, got %d", rec.Code)
	}
}

func TestTransactionEditFormPrefilled(t *testing.T) {
	srv, _ := newTestServer(t)

	postForm(srv, "/transactions", url.Values{
		"type": {"revenue"}, "name": {"Website Design"}, "amount": {"2500"}, "date": {"2025-06-01"},
	})

	rec := get(srv, "/ui/transaction-form?id=id-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("open edit form: %d %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Edit transaction", "Website Design", "2500.00", "2025-06-01"} {
		if !strings.Contains(body, want) {
			t.Fatalf("edit form missing %q: %s", want, body)
		}
	}
}

func TestTransactionEditFormUnknownID(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := get(srv, "/ui/transaction-form?id=never-existed"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	// The failed open must not leave the dialog stuck.
	if rec := get(srv, "/ui/transaction-form"); rec.Code != http.StatusOK {
		t.Fatalf("add form blocked after failed edit open: %d", rec.Code)
	}
}

func TestAppointmentEditFormPrefilled(t *testing.T) {
	srv, _ := newTestServer(t)

	postForm(srv, "/appointments", url.Values{
		"title": {"Client Meeting"}, "date": {"2025-07-10"},
	})

	rec := get(srv, "/ui/appointment-form?id=id-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("open edit form: %d %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"Edit appointment", "Client Meeting", "2025-07-10"} {
		if !strings.Contains(body, want) {
			t.Fatalf("edit form missing %q: %s", want, body)
		}
	}
}

func TestMethodGuards(t *testing.T) {
	srv, _ := newTestServer(t)
	if rec := get(srv, "/transactions"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if rec := get(srv, "/calendar/select"); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
