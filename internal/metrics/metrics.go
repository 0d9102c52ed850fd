// Package metrics exposes Prometheus counters for the intake pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for SubmissionsTotal.
const (
	ResultAccepted = "accepted"
	ResultInvalid  = "invalid"
	ResultConflict = "conflict"
	ResultFailed   = "failed"
)

var (
	// SubmissionsTotal counts intake attempts.
	// Labels: form (contact, partnership, newsletter), result (accepted, invalid, conflict, failed)
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bondspire",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total number of form intake attempts by form and outcome",
		},
		[]string{"form", "result"},
	)

	// NotificationsTotal counts fire-and-forget notification deliveries.
	// Labels: kind (event kind), result (success, error)
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bondspire",
			Subsystem: "intake",
			Name:      "notifications_total",
			Help:      "Total number of notification dispatches by event kind and result",
		},
		[]string{"kind", "result"},
	)
)

// ObserveSubmission records the outcome of one intake attempt.
func ObserveSubmission(form, result string) {
	SubmissionsTotal.WithLabelValues(form, result).Inc()
}

// ObserveNotification records one notification delivery.
func ObserveNotification(kind string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	NotificationsTotal.WithLabelValues(kind, result).Inc()
}
