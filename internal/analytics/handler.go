package analytics

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/wolfman30/prospecting-manager/internal/prospects"
	"github.com/wolfman30/prospecting-manager/pkg/logging"
)

// Handler handles HTTP requests for conversion analytics
type Handler struct {
	store  *prospects.Store
	logger *logging.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(store *prospects.Store, logger *logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// GetSummary handles GET /analytics/summary.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Overall(h.store.Snapshot()))
}

// GroupResponse wraps a grouped rate table
type GroupResponse struct {
	Rows []GroupRow `json:"rows"`
}

// ByCompany handles GET /analytics/companies.
func (h *Handler) ByCompany(w http.ResponseWriter, r *http.Request) {
	rows := RateByCompany(h.store.Snapshot(), topN(r))
	if rows == nil {
		rows = []GroupRow{}
	}
	writeJSON(w, GroupResponse{Rows: rows})
}

// ByState handles GET /analytics/states.
func (h *Handler) ByState(w http.ResponseWriter, r *http.Request) {
	rows := RateByState(h.store.Snapshot(), topN(r))
	if rows == nil {
		rows = []GroupRow{}
	}
	writeJSON(w, GroupResponse{Rows: rows})
}

// ByHour handles GET /analytics/hours.
func (h *Handler) ByHour(w http.ResponseWriter, r *http.Request) {
	rows := RateByHour(h.store.Snapshot())
	if rows == nil {
		rows = []HourRow{}
	}
	writeJSON(w, map[string][]HourRow{"rows": rows})
}

// ByWeekday handles GET /analytics/weekdays.
func (h *Handler) ByWeekday(w http.ResponseWriter, r *http.Request) {
	rows := RateByWeekday(h.store.Snapshot())
	if rows == nil {
		rows = []WeekdayRow{}
	}
	writeJSON(w, map[string][]WeekdayRow{"rows": rows})
}

func topN(r *http.Request) int {
	if s := r.URL.Query().Get("top"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return DefaultTopN
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
