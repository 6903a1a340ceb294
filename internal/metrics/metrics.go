// Package metrics holds the prometheus collectors shared by the services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "playground"

var (
	GamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_started_total",
		Help:      "Games created, by game type.",
	}, []string{"type"})

	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_finished_total",
		Help:      "Games that reached a terminal state, by result (X, O or draw).",
	}, []string{"result"})

	BotMoveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "bot_move_duration_seconds",
		Help:      "Time spent choosing a bot move, by difficulty.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"difficulty"})

	MarkdownRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "markdown_renders_total",
		Help:      "Markdown documents rendered, by output format.",
	}, []string{"format"})

	MarkdownRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "markdown_render_duration_seconds",
		Help:      "Time spent rendering markdown, by output format.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"format"})
)
