// Package metrics keeps per-run counters for the batch commands and writes
// them to a node_exporter textfile when configured.
package metrics

import (
	"context"
	"time"

	"linewar-tracker/internal/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const namespace = "linewar"

type Recorder struct {
	registry *prometheus.Registry
	outcomes *prometheus.CounterVec
	players  prometheus.Gauge
	entries  prometheus.Gauge
	lastRun  *prometheus.GaugeVec
	duration *prometheus.GaugeVec
	textfile string
	logger   zerolog.Logger
}

// New flushes to the textfile when the app stops.
func New(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) *Recorder {
	r := NewRecorder(cfg.MetricsTextfile, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return r.Flush()
		},
	})
	return r
}

func NewRecorder(textfile string, logger zerolog.Logger) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "association",
			Name:      "outcomes_total",
			Help:      "Resolution outcomes by kind.",
		}, []string{"outcome"}),
		players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "association",
			Name:      "unresolved_players",
			Help:      "Unresolved players at the start of the last run.",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "leaderboard",
			Name:      "entries",
			Help:      "Entries stored by the last scrape.",
		}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last successful run finished.",
		}, []string{"job"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last successful run.",
		}, []string{"job"}),
		textfile: textfile,
		logger:   logger,
	}

	r.registry.MustRegister(r.outcomes, r.players, r.entries, r.lastRun, r.duration)
	return r
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Outcome(kind string) {
	r.outcomes.WithLabelValues(kind).Inc()
}

func (r *Recorder) UnresolvedPlayers(n int) {
	r.players.Set(float64(n))
}

func (r *Recorder) ScrapedEntries(n int) {
	r.entries.Set(float64(n))
}

func (r *Recorder) RunFinished(job string, started time.Time) {
	now := time.Now()
	r.lastRun.WithLabelValues(job).Set(float64(now.Unix()))
	r.duration.WithLabelValues(job).Set(now.Sub(started).Seconds())
}

// Flush writes the registry to the textfile. Without a textfile it does nothing.
func (r *Recorder) Flush() error {
	if r.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.textfile, r.registry); err != nil {
		r.logger.Warn().Err(err).Str("path", r.textfile).Msg("failed to write metrics textfile")
		return err
	}
	r.logger.Debug().Str("path", r.textfile).Msg("metrics textfile written")
	return nil
}
