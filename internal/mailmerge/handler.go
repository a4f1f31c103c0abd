package mailmerge

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/wolfman30/prospecting-manager/internal/observability/metrics"
	"github.com/wolfman30/prospecting-manager/internal/prospects"
	"github.com/wolfman30/prospecting-manager/pkg/logging"
)

// Handler handles HTTP requests for personalized email text
type Handler struct {
	store   *prospects.Store
	logger  *logging.Logger
	metrics *metrics.OutreachMetrics

	defaultSubject string
	defaultBody    string
}

// NewHandler creates a new mailmerge handler. The default templates are
// used whenever a request leaves its templates empty.
func NewHandler(store *prospects.Store, logger *logging.Logger, m *metrics.OutreachMetrics, defaultSubject, defaultBody string) *Handler {
	if defaultSubject == "" {
		defaultSubject = DefaultSubjectTemplate
	}
	if defaultBody == "" {
		defaultBody = DefaultBodyTemplate
	}
	return &Handler{
		store:          store,
		logger:         logger,
		metrics:        m,
		defaultSubject: defaultSubject,
		defaultBody:    defaultBody,
	}
}

// PreviewRequest selects one record and the templates to render
type PreviewRequest struct {
	Index           int    `json:"index"`
	SubjectTemplate string `json:"subjectTemplate"`
	BodyTemplate    string `json:"bodyTemplate"`
}

// PreviewResponse is the rendered text plus a mail-compose link when the
// record has an email address
type PreviewResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto,omitempty"`
}

// Preview handles POST /emails/preview, rendering one record.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	rec, ok := h.store.Get(req.Index)
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	subjectTmpl, bodyTmpl := h.templates(req.SubjectTemplate, req.BodyTemplate)
	subject, body := Render(rec, subjectTmpl, bodyTmpl)
	h.metrics.ObserveEmailsRendered(1)

	resp := PreviewResponse{Subject: subject, Body: body}
	if email := strings.TrimSpace(rec.Email); email != "" {
		resp.Mailto = MailtoLink(email, subject, body)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// BatchRequest carries the templates for a whole-set render
type BatchRequest struct {
	SubjectTemplate string `json:"subjectTemplate"`
	BodyTemplate    string `json:"bodyTemplate"`
}

// BatchResponse lists the rendered emails
type BatchResponse struct {
	Count  int     `json:"count"`
	Emails []Email `json:"emails"`
}

// BatchRender handles POST /emails/batch: one rendered message per
// email-bearing prospect, as JSON or CSV (?format=csv).
func (h *Handler) BatchRender(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	subjectTmpl, bodyTmpl := h.templates(req.SubjectTemplate, req.BodyTemplate)
	emails := Batch(h.store.Snapshot(), subjectTmpl, bodyTmpl)
	h.metrics.ObserveEmailsRendered(len(emails))
	h.logger.Info("email batch rendered", "count", len(emails))

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=personalized_emails.csv")
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"Name", "Email", "Subject", "Body"}); err != nil {
			h.logger.Error("failed to write csv header", "error", err)
			return
		}
		for _, e := range emails {
			if err := cw.Write([]string{e.Name, e.Email, e.Subject, e.Body}); err != nil {
				h.logger.Error("failed to write csv row", "error", err)
				return
			}
		}
		cw.Flush()
		return
	}

	if emails == nil {
		emails = []Email{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BatchResponse{Count: len(emails), Emails: emails})
}

func (h *Handler) templates(subject, body string) (string, string) {
	if subject == "" {
		subject = h.defaultSubject
	}
	if body == "" {
		body = h.defaultBody
	}
	return subject, body
}
