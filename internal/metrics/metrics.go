// Package metrics exports game activity as Prometheus metrics. Collector
// implements round.Observer.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ingyamilmolinar/shimon/core/gate"
	"github.com/ingyamilmolinar/shimon/core/round"
	game_log "github.com/ingyamilmolinar/shimon/internal/log"
)

const namespace = "shimon"

type Collector struct {
	roundsStarted prometheus.Counter
	roundsEnded   *prometheus.CounterVec
	roundScore    prometheus.Histogram
	roundLevel    prometheus.Histogram
	roundDuration prometheus.Histogram
	transitions   *prometheus.CounterVec
	cueWait       *prometheus.HistogramVec
	presses       *prometheus.CounterVec
	confuser      prometheus.Gauge
	inRound       prometheus.Gauge

	logger *game_log.Logger
}

var _ round.Observer = (*Collector)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer, logger *game_log.Logger) (*Collector, error) {
	if logger == nil {
		logger = game_log.Discard()
	}
	c := &Collector{
		roundsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Rounds started by a button press.",
		}),
		roundsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_ended_total",
			Help:      "Rounds ended, by reason.",
		}, []string{"reason"}),
		roundScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_score",
			Help:      "Final score of each round.",
			Buckets:   []float64{0, 1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 78, 105},
		}),
		roundLevel: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_level",
			Help:      "Level reached in each round.",
			Buckets:   prometheus.LinearBuckets(1, 2, 16),
		}),
		roundDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_duration_seconds",
			Help:      "Time from the start press to game over.",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 8),
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "State machine transitions, by target state.",
		}, []string{"to"}),
		cueWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cue_wait_seconds",
			Help:      "Time spent waiting on a clip or guard, by how the wait ended.",
			Buckets:   []float64{.05, .1, .25, .5, .75, 1, 1.5, 2, 3},
		}, []string{"kind", "outcome"}),
		presses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presses_total",
			Help:      "Presses seen while the player repeats the sequence, by result.",
		}, []string{"result"}),
		confuser: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "confuser_enabled",
			Help:      "1 when spoken colors may differ from lit ones.",
		}),
		inRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "round_in_progress",
			Help:      "1 while a round is being played.",
		}),
		logger: logger.Tagged("METRICS"),
	}
	for _, col := range []prometheus.Collector{
		c.roundsStarted, c.roundsEnded, c.roundScore, c.roundLevel, c.roundDuration,
		c.transitions, c.cueWait, c.presses, c.confuser, c.inRound,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

// SetConfuser records the power-on confuser setting.
func (c *Collector) SetConfuser(enabled bool) { c.confuser.Set(boolGauge(enabled)) }

func (c *Collector) StateChanged(_, to round.StateName) {
	c.transitions.WithLabelValues(string(to)).Inc()
}

func (c *Collector) RoundStarted(string) {
	c.roundsStarted.Inc()
	c.inRound.Set(1)
}

func (c *Collector) RoundEnded(_ string, reason round.EndReason, score, level int, played time.Duration) {
	c.roundsEnded.WithLabelValues(string(reason)).Inc()
	c.roundScore.Observe(float64(score))
	c.roundLevel.Observe(float64(level))
	c.roundDuration.Observe(played.Seconds())
	c.inRound.Set(0)
}

func (c *Collector) CueResolved(kind string, outcome gate.Outcome, waited time.Duration) {
	c.cueWait.WithLabelValues(kind, outcome.String()).Observe(waited.Seconds())
}

func (c *Collector) PressEvaluated(result round.PressResult) {
	c.presses.WithLabelValues(string(result)).Inc()
}

func (c *Collector) ConfuserToggled(enabled bool) { c.confuser.Set(boolGauge(enabled)) }

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer, logger *game_log.Logger) error {
	if logger == nil {
		logger = game_log.Discard()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Infof("[METRICS] exposed at http://%s/metrics", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics shutdown: %w", err)
		}
		return nil
	}
}
