package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wolfman30/prospecting-manager/internal/analytics"
	"github.com/wolfman30/prospecting-manager/internal/invite"
	"github.com/wolfman30/prospecting-manager/internal/mailmerge"
	"github.com/wolfman30/prospecting-manager/internal/prospects"
	"github.com/wolfman30/prospecting-manager/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger           *logging.Logger
	ProspectsHandler *prospects.Handler
	InviteHandler    *invite.Handler
	MailmergeHandler *mailmerge.Handler
	AnalyticsHandler *analytics.Handler
	MetricsHandler   http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.ProspectsHandler != nil {
		r.Route("/prospects", func(r chi.Router) {
			r.Get("/", cfg.ProspectsHandler.List)
			r.Post("/", cfg.ProspectsHandler.Create)
			r.Post("/import", cfg.ProspectsHandler.Import)
			r.Get("/export", cfg.ProspectsHandler.Export)
			r.Get("/contacts", cfg.ProspectsHandler.ContactsExtract)
			r.Post("/attempts/increment", cfg.ProspectsHandler.IncrementAttempts)
			r.Put("/{index}", cfg.ProspectsHandler.Update)
		})
	}

	if cfg.InviteHandler != nil {
		r.Route("/invites", func(r chi.Router) {
			r.Get("/", cfg.InviteHandler.Bulk)
			r.Get("/{index}", cfg.InviteHandler.Single)
		})
	}

	if cfg.MailmergeHandler != nil {
		r.Route("/emails", func(r chi.Router) {
			r.Post("/preview", cfg.MailmergeHandler.Preview)
			r.Post("/batch", cfg.MailmergeHandler.BatchRender)
		})
	}

	if cfg.AnalyticsHandler != nil {
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", cfg.AnalyticsHandler.GetSummary)
			r.Get("/companies", cfg.AnalyticsHandler.ByCompany)
			r.Get("/states", cfg.AnalyticsHandler.ByState)
			r.Get("/hours", cfg.AnalyticsHandler.ByHour)
			r.Get("/weekdays", cfg.AnalyticsHandler.ByWeekday)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
