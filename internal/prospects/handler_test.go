package prospects

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/wolfman30/prospecting-manager/internal/observability/metrics"
	"github.com/wolfman30/prospecting-manager/pkg/logging"
)

func newTestHandler() (*Handler, *Store) {
	store := NewStore()
	logger := logging.Default()
	m := metrics.NewOutreachMetrics(prometheus.NewRegistry())
	return NewHandler(store, logger, m), store
}

func testRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/prospects", h.List)
	r.Post("/prospects", h.Create)
	r.Post("/prospects/import", h.Import)
	r.Get("/prospects/export", h.Export)
	r.Get("/prospects/contacts", h.ContactsExtract)
	r.Post("/prospects/attempts/increment", h.IncrementAttempts)
	r.Put("/prospects/{index}", h.Update)
	return r
}

func TestImport_Success(t *testing.T) {
	handler, store := newTestHandler()

	table := Table{
		Columns: []string{"name", "email", "attempts"},
		Rows: [][]string{
			{"Ana Lopez", "ana@acme.com", "2"},
			{"Ben Okafor", "", "junk"},
		},
	}

	body, _ := json.Marshal(table)
	req := httptest.NewRequest(http.MethodPost, "/prospects/import", bytes.NewReader(body))
	w := httptest.NewRecorder()

	testRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if store.Count() != 2 {
		t.Fatalf("expected 2 records imported, got %d", store.Count())
	}
	rec, _ := store.Get(1)
	if rec.Attempts != 0 {
		t.Errorf("expected junk attempts defaulted to 0, got %d", rec.Attempts)
	}
}

func TestImport_InvalidJSON(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/prospects/import", strings.NewReader("{"))
	w := httptest.NewRecorder()

	testRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestList_FiltersByQuery(t *testing.T) {
	handler, store := newTestHandler()
	store.ReplaceAll(testRecords())

	req := httptest.NewRequest(http.MethodGet, "/prospects?company=Acme&state=NY", nil)
	w := httptest.NewRecorder()

	testRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Prospects[0].Name != "Ana" {
		t.Fatalf("expected only Ana, got %+v", resp)
	}
}

func TestUpdate_OutOfRange(t *testing.T) {
	handler, _ := newTestHandler()

	body, _ := json.Marshal(Record{Name: "Nobody"})
	req := httptest.NewRequest(http.MethodPut, "/prospects/5", bytes.NewReader(body))
	w := httptest.NewRecorder()

	testRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestExport_CSV(t *testing.T) {
	handler, store := newTestHandler()
	store.ReplaceAll([]Record{{Name: "Ana", Email: "ana@acme.com", Attempts: 2}})

	req := httptest.NewRequest(http.MethodGet, "/prospects/export?format=csv", nil)
	w := httptest.NewRecorder()

	testRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %s", ct)
	}
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if lines[0] != strings.Join(Columns, ",") {
		t.Errorf("expected canonical header, got %s", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
}

func TestContacts_Projection(t *testing.T) {
	handler, store := newTestHandler()
	store.ReplaceAll([]Record{{Name: "Ana", Phone: "555-0100", Email: "ana@acme.com", Company: "Acme"}})

	req := httptest.NewRequest(http.MethodGet, "/prospects/contacts", nil)
	w := httptest.NewRecorder()

	testRouter(handler).ServeHTTP(w, req)

	var table Table
	if err := json.NewDecoder(w.Body).Decode(&table); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(table.Columns) != 3 {
		t.Fatalf("expected Name/Phone/Email only, got %v", table.Columns)
	}
}

func TestIncrementAttempts_Filtered(t *testing.T) {
	handler, store := newTestHandler()
	store.ReplaceAll(testRecords())

	body, _ := json.Marshal(IncrementRequest{Filter: Filter{Companies: []string{"Acme"}}})
	req := httptest.NewRequest(http.MethodPost, "/prospects/attempts/increment", bytes.NewReader(body))
	w := httptest.NewRecorder()

	testRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp map[string]int
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["updated"] != 2 {
		t.Fatalf("expected 2 updated, got %d", resp["updated"])
	}
}

func TestCreate_AppendsRecord(t *testing.T) {
	handler, store := newTestHandler()

	body, _ := json.Marshal(Record{Name: "Dee", Attempts: -3})
	req := httptest.NewRequest(http.MethodPost, "/prospects", bytes.NewReader(body))
	w := httptest.NewRecorder()

	testRouter(handler).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	rec, ok := store.Get(0)
	if !ok || rec.Name != "Dee" {
		t.Fatalf("expected record appended, got %+v", rec)
	}
	if rec.Attempts != 0 {
		t.Errorf("expected negative attempts clamped, got %d", rec.Attempts)
	}
}
