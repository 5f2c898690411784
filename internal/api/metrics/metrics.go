// Package metrics defines all custom Prometheus metrics for the province
// chat API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "provincechat"

// MessagesPostedTotal counts messages successfully appended to a province.
// Label:
//   - province: the province the message was posted to
var MessagesPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_posted_total",
		Help:      "Total number of messages successfully posted, by province.",
	},
	[]string{"province"},
)

// MessagesRejectedTotal counts rejected message posts.
// Label:
//   - reason: "empty", "no_province", or "muted"
var MessagesRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_rejected_total",
		Help:      "Total number of rejected message posts, by reason.",
	},
	[]string{"reason"},
)

// ModerationActionsTotal counts applied mutes and unmutes. Idempotent no-ops
// are not counted.
// Label:
//   - action: "mute" or "unmute"
var ModerationActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_actions_total",
		Help:      "Total number of moderation actions applied, by action.",
	},
	[]string{"action"},
)

// MessageListDuration measures how long building a visible message feed takes,
// including the mute-set read and role resolution.
// Label:
//   - province: the province being read
var MessageListDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "message_list_duration_seconds",
		Help:      "Duration of visible message feed construction.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"province"},
)

// AuditQueueDepth tracks the number of moderation audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
