// Package metrics defines and registers all custom Prometheus metrics for the
// monument site API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the HTTP layer only needs to expose /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "monument"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SignUpsTotal counts registration attempts.
// Label:
//   - result: "success", "pending_confirmation", or "failure"
var SignUpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ups_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// GuardRedirectsTotal counts admin route guard redirects.
// Label:
//   - reason: "unauthenticated" (anonymous user on a protected page) or
//     "already_authenticated" (signed-in user on the login page)
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of admin route guard redirects, by reason.",
	},
	[]string{"reason"},
)

// ── Attachment metrics ────────────────────────────────────────────────────────

// AttachmentUploadsTotal counts attachment uploads.
// Label:
//   - result: "success" or "failure"
var AttachmentUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachment_uploads_total",
		Help:      "Total number of attachment uploads, by result.",
	},
	[]string{"result"},
)

// AttachmentUploadBytes measures the size of uploaded attachments.
var AttachmentUploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "attachment_upload_bytes",
		Help:      "Size distribution of uploaded attachments.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1 KiB … 16 MiB
	},
)

// ── Announcement metrics ──────────────────────────────────────────────────────

// AnnouncementsCreatedTotal counts newly published announcements.
var AnnouncementsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "announcements_created_total",
		Help:      "Total number of announcements created.",
	},
)
