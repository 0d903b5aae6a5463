// Package metrics defines the console's Prometheus metrics. They register
// with the default registry on import and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hoteladmin"

// LoginsTotal counts login attempts.
// Label result: "success", "invalid_credentials", "error".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logouts.
// Label reason: "user", "expired", "invalid".
var LogoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Logouts by reason.",
	},
	[]string{"reason"},
)

// SessionRestoresTotal counts startup restorations.
// Label result: "restored", "none", "error".
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Startup session restorations by result.",
	},
	[]string{"result"},
)

// SessionPersistFailuresTotal counts failed writes or deletes of the stored session.
var SessionPersistFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_persist_failures_total",
		Help:      "Failures writing or deleting the stored session.",
	},
)

// GuardDecisionsTotal counts guard outcomes on protected routes.
// Label decision: "pending", "login", "unauthorized", "allow".
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Access guard decisions.",
	},
	[]string{"decision"},
)

// NotificationsAddedTotal counts notifications by severity.
var NotificationsAddedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_added_total",
		Help:      "Notifications added by severity.",
	},
	[]string{"severity"},
)

// NotificationsCurrent tracks the size of the notification list.
var NotificationsCurrent = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_current",
		Help:      "Notifications currently held.",
	},
)

// RecordsCreatedTotal counts created records.
// Label kind: "customer", "booking", "expense".
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Records created, by kind.",
	},
	[]string{"kind"},
)

// HousekeepingRunsTotal counts housekeeping passes.
var HousekeepingRunsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "housekeeping_runs_total",
		Help:      "Completed housekeeping passes.",
	},
)
