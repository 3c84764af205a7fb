package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	OrdersFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_failed_total",
		Help: "Total number of rejected order requests",
	}, []string{"reason"})

	ContactSubmissionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contact_submissions_total",
		Help: "Total number of contact form submissions accepted",
	})

	NewsletterSubscribesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsletter_subscribes_total",
		Help: "Total number of newsletter subscriptions",
	})

	EmailSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "email_send_failures_total",
		Help: "Total number of failed email dispatches",
	})

	SMSSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sms_send_failures_total",
		Help: "Total number of failed SMS dispatches",
	})

	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "requests_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"limiter"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
