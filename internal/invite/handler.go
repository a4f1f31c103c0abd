package invite

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/prospecting-manager/internal/observability/metrics"
	"github.com/wolfman30/prospecting-manager/internal/prospects"
	"github.com/wolfman30/prospecting-manager/pkg/logging"
)

// countHeader reports how many events the response actually contains, so
// callers are never silently told "done" with a wrong count.
const countHeader = "X-Invite-Count"

// Handler handles HTTP requests for calendar invite documents
type Handler struct {
	encoder *Encoder
	store   *prospects.Store
	logger  *logging.Logger
	metrics *metrics.OutreachMetrics
}

// NewHandler creates a new invite handler
func NewHandler(encoder *Encoder, store *prospects.Store, logger *logging.Logger, m *metrics.OutreachMetrics) *Handler {
	return &Handler{encoder: encoder, store: store, logger: logger, metrics: m}
}

// Single handles GET /invites/{index}. A record without a meeting timestamp
// yields 204 with a zero count: a valid no-op, not an error.
func (h *Handler) Single(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	rec, ok := h.store.Get(index)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	data, ok := h.encoder.Encode(rec)
	if !ok {
		h.metrics.ObserveInvites("single", 0, 1)
		w.Header().Set(countHeader, "0")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.metrics.ObserveInvites("single", 1, 0)
	h.logger.Info("invite generated", "name", rec.Name)

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", "attachment; filename="+Filename(rec))
	w.Header().Set(countHeader, "1")
	w.Write(data)
}

// Bulk handles GET /invites: one combined document with one event per
// record that has a meeting timestamp. With ?status=yes only confirmed
// meetings are considered, matching the export the grid offers.
func (h *Handler) Bulk(w http.ResponseWriter, r *http.Request) {
	records := h.store.Snapshot()
	if strings.EqualFold(r.URL.Query().Get("status"), "yes") {
		records = ConfirmedMeetings(records)
	}

	data, produced := h.encoder.EncodeAll(records)
	skipped := len(records) - produced
	h.metrics.ObserveInvites("bulk", produced, skipped)
	h.logger.Info("bulk invites generated", "produced", produced, "skipped", skipped)

	w.Header().Set(countHeader, strconv.Itoa(produced))
	if produced == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", "attachment; filename=meetings_bulk.ics")
	w.Write(data)
}
