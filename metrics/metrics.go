package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConversationTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_conversation_turns_total",
			Help: "Total number of dialogue turns processed, by outcome step",
		},
		[]string{"step"},
	)

	ConversationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_conversations_completed_total",
			Help: "Total number of conversations that reached the offer summary",
		},
	)

	OfferScrapes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offer_scrapes_total",
			Help: "Total number of offer source lookups, by cache result",
		},
		[]string{"result"},
	)

	OfferScrapeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "offer_scrape_duration_seconds",
			Help: "Duration of offer source fetches in seconds",
		},
	)

	SpeechCallsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speech_calls_failed_total",
			Help: "Total number of failed transcription/synthesis calls",
		},
		[]string{"provider"},
	)
)
