package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-snake/internal/session"
)

// Metrics holds the Prometheus collectors for the browser server.
type Metrics struct {
	registry *prometheus.Registry

	SessionsActive prometheus.Gauge
	GamesStarted   prometheus.Counter
	GamesOver      prometheus.Counter
	FoodEaten      prometheus.Counter
	Ticks          prometheus.Counter
	HighScore      prometheus.Gauge
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "snake_sessions_active",
			Help: "Connected browser sessions.",
		}),
		GamesStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_games_started_total",
			Help: "Games started.",
		}),
		GamesOver: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_games_over_total",
			Help: "Games ended by collision or forfeit.",
		}),
		FoodEaten: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_food_eaten_total",
			Help: "Food eaten across all games.",
		}),
		Ticks: factory.NewCounter(prometheus.CounterOpts{
			Name: "snake_ticks_total",
			Help: "Engine ticks across all games.",
		}),
		HighScore: factory.NewGauge(prometheus.GaugeOpts{
			Name: "snake_high_score",
			Help: "Best score seen by this server.",
		}),
	}
}

// Observe records a session update.
func (m *Metrics) Observe(u session.Update) {
	if u.Started {
		m.GamesStarted.Inc()
	}
	if u.Ticked {
		m.Ticks.Inc()
	}
	if u.Ate {
		m.FoodEaten.Inc()
	}
	if u.Ended {
		m.GamesOver.Inc()
		m.HighScore.Set(float64(u.Snapshot.HighScore))
	}
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
