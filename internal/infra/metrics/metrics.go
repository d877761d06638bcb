package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Metrics groups the poller's Prometheus instruments.
// It implements app.Observer.
type Metrics struct {
	Cycles            *prometheus.CounterVec
	NotificationsSent prometheus.Counter
	Failures          *prometheus.CounterVec
	Cursor            prometheus.Gauge
	CycleDuration     prometheus.Histogram
}

// New registers all instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homework_poll_cycles_total",
			Help: "Poll cycles by result.",
		}, []string{"result"}),

		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "homework_notifications_sent_total",
			Help: "Status notifications delivered to the chat.",
		}),

		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "homework_poll_failures_total",
			Help: "Failed poll cycles by error kind.",
		}, []string{"kind"}),

		Cursor: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "homework_poll_cursor_timestamp_seconds",
			Help: "from_date sent on the next fetch.",
		}),

		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "homework_poll_cycle_duration_seconds",
			Help:    "Time spent in one poll cycle, excluding the wait.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.Cycles,
		m.NotificationsSent,
		m.Failures,
		m.Cursor,
		m.CycleDuration,
	)
	return m
}

func (m *Metrics) CycleFinished(res app.CycleResult) {
	m.Cycles.WithLabelValues(res.Result()).Inc()
	m.NotificationsSent.Add(float64(res.Sent))
	if res.Err != nil {
		m.Failures.WithLabelValues(homework.Kind(res.Err)).Inc()
	}
	m.Cursor.Set(float64(res.Cursor.Int64()))
	m.CycleDuration.Observe(res.Duration.Seconds())
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Metrics server listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
