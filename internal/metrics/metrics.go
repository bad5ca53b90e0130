package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation outcomes.
const (
	OutcomeMatched = "matched"
	OutcomeNoMatch = "no_match"
	OutcomeInvalid = "invalid"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptomchat_recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "symptomchat_match_duration_seconds",
			Help:    "Time spent scoring input against the knowledge base",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		},
	)

	KnowledgeBaseConditions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "symptomchat_knowledge_base_conditions",
			Help: "Number of condition records loaded at startup",
		},
	)

	HistoryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptomchat_history_errors_total",
			Help: "Chat history store failures by operation",
		},
		[]string{"op"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptomchat_http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)
)
