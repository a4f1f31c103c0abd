package metrics

import "github.com/prometheus/client_golang/prometheus"

// OutreachMetrics exposes counters for the derivation pipeline.
type OutreachMetrics struct {
	importsTotal    prometheus.Counter
	recordsImported prometheus.Counter
	invitesTotal    *prometheus.CounterVec
	invitesSkipped  prometheus.Counter
	emailsRendered  prometheus.Counter
}

func NewOutreachMetrics(reg prometheus.Registerer) *OutreachMetrics {
	m := &OutreachMetrics{
		importsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "prospecting",
			Subsystem: "outreach",
			Name:      "imports_total",
			Help:      "Total tabular imports normalized",
		}),
		recordsImported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "prospecting",
			Subsystem: "outreach",
			Name:      "records_imported_total",
			Help:      "Total prospect records normalized across imports",
		}),
		invitesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "prospecting",
			Subsystem: "outreach",
			Name:      "invites_total",
			Help:      "Total calendar invites produced",
		}, []string{"mode"}),
		invitesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "prospecting",
			Subsystem: "outreach",
			Name:      "invites_skipped_total",
			Help:      "Records skipped during invite generation for lack of a meeting time",
		}),
		emailsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "prospecting",
			Subsystem: "outreach",
			Name:      "emails_rendered_total",
			Help:      "Total personalized emails rendered",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.importsTotal, m.recordsImported, m.invitesTotal, m.invitesSkipped, m.emailsRendered)
	return m
}

func (m *OutreachMetrics) ObserveImport(records int) {
	if m == nil {
		return
	}
	m.importsTotal.Inc()
	m.recordsImported.Add(float64(records))
}

func (m *OutreachMetrics) ObserveInvites(mode string, produced, skipped int) {
	if m == nil {
		return
	}
	m.invitesTotal.WithLabelValues(mode).Add(float64(produced))
	m.invitesSkipped.Add(float64(skipped))
}

func (m *OutreachMetrics) ObserveEmailsRendered(count int) {
	if m == nil {
		return
	}
	m.emailsRendered.Add(float64(count))
}
