package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "helpdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Helpdesk

	TicketsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_tickets_created_total",
			Help: "Tickets raised, by category and urgency",
		},
		[]string{"category", "urgency"},
	)

	TicketAuditComments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_ticket_audit_comments_total",
			Help: "Audit comments written on admin ticket updates",
		},
		[]string{"kind"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	AssetsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "helpdesk_assets_registered_total",
			Help: "Assets added to the inventory",
		},
	)
)
