// Package metrics exports per-packet pipeline statistics to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Observe-l/dnastore/pipeline"
)

const namespace = "dnastore"

// Collector holds the pipeline series. Each Collector registers on its own
// registry so tests and servers do not collide.
type Collector struct {
	reg      *prometheus.Registry
	packets  *prometheus.CounterVec
	events   *prometheus.CounterVec
	detected prometheus.Histogram
	duration prometheus.Histogram
}

func NewCollector() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		packets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "packets_total",
			Help:      "Packets processed, by verdict.",
		}, []string{"verdict"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "events_total",
			Help:      "Summed per-packet statistics, by field.",
		}, []string{"field"}),
		detected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "outer",
			Name:      "detected_per_packet",
			Help:      "Outer-code errata located per packet.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "packet_duration_seconds",
			Help:      "Wall time to process one packet.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	c.reg.MustRegister(c.packets, c.events, c.detected, c.duration)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Observe records one finished packet.
func (c *Collector) Observe(st pipeline.Stats, took time.Duration) {
	verdict := "ok"
	if !st.OK() {
		verdict = "bad"
	}
	c.packets.WithLabelValues(verdict).Inc()
	for name, v := range map[string]int{
		"inner_failures":        st.InnerFailures,
		"erasure_bytes":         st.ErasureBytes,
		"outer_detected":        st.OuterDetected,
		"outer_uncorrected":     st.OuterUncorrected,
		"outer_failures":        st.OuterFailures,
		"mismatches":            st.Mismatches,
		"constraint_violations": st.ConstraintViolations,
	} {
		c.events.WithLabelValues(name).Add(float64(v))
	}
	c.detected.Observe(float64(st.OuterDetected))
	c.duration.Observe(took.Seconds())
}

// Serve exposes /metrics on addr until ctx ends.
func (c *Collector) Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	log.Info().Str("addr", ln.Addr().String()).Msg("metrics listening")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
