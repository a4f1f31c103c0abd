package prospects

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/prospecting-manager/internal/observability/metrics"
	"github.com/wolfman30/prospecting-manager/pkg/logging"
)

// Handler handles HTTP requests for the prospect record set
type Handler struct {
	store   *Store
	logger  *logging.Logger
	metrics *metrics.OutreachMetrics
}

// NewHandler creates a new prospects handler
func NewHandler(store *Store, logger *logging.Logger, m *metrics.OutreachMetrics) *Handler {
	return &Handler{store: store, logger: logger, metrics: m}
}

// Import handles POST /prospects/import. The body is a tabular payload;
// normalization never rejects it, so the only error path is malformed JSON.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var t Table
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		h.logger.Error("failed to decode import table", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	records := Normalize(t)
	h.store.ReplaceAll(records)
	h.metrics.ObserveImport(len(records))
	h.logger.Info("prospects imported", "count", len(records))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"count": len(records)})
}

// ListResponse is the response for listing prospects
type ListResponse struct {
	Count     int      `json:"count"`
	Prospects []Record `json:"prospects"`
}

// List handles GET /prospects. Repeatable status/state/company query params
// filter the view the way the grid's multi-selects do.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)
	records := h.store.Filtered(f)
	if records == nil {
		records = []Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Count: len(records), Prospects: records})
}

// Create handles POST /prospects, appending one record to the collection.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var rec Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if rec.Attempts < 0 {
		rec.Attempts = 0
	}
	h.store.Append(rec)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

// Update handles PUT /prospects/{index}, replacing one record in place.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	var rec Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if rec.Attempts < 0 {
		rec.Attempts = 0
	}

	if !h.store.Update(index, rec) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
}

// Export handles GET /prospects/export: the canonical table in fixed column
// order, as JSON or CSV (?format=csv).
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	t := Export(h.store.Snapshot())
	h.writeTable(w, r, t, "prospects_updated.csv")
}

// ContactsExtract handles GET /prospects/contacts: the Name/Phone/Email
// projection.
func (h *Handler) ContactsExtract(w http.ResponseWriter, r *http.Request) {
	t := Contacts(h.store.Snapshot())
	h.writeTable(w, r, t, "contacts_export.csv")
}

// IncrementRequest scopes a bulk attempts increment
type IncrementRequest struct {
	Filter Filter `json:"filter"`
}

// IncrementAttempts handles POST /prospects/attempts/increment, bumping the
// attempts counter for every record matching the filter.
func (h *Handler) IncrementAttempts(w http.ResponseWriter, r *http.Request) {
	var req IncrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated := h.store.IncrementAttempts(req.Filter)
	h.logger.Info("attempts incremented", "updated", updated)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"updated": updated})
}

func (h *Handler) writeTable(w http.ResponseWriter, r *http.Request, t Table, filename string) {
	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		cw := csv.NewWriter(w)
		if err := cw.Write(t.Columns); err != nil {
			h.logger.Error("failed to write csv header", "error", err)
			return
		}
		if err := cw.WriteAll(t.Rows); err != nil {
			h.logger.Error("failed to write csv rows", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}

func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		Statuses:  q["status"],
		States:    q["state"],
		Companies: q["company"],
	}
}
