package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/njchilds90/funcalg"
)

type metrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "funcalg",
			Name:      "tool_calls_total",
			Help:      "Tool calls handled, by tool and outcome.",
		}, []string{"tool", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "funcalg",
			Name:      "tool_call_duration_seconds",
			Help:      "Time spent in HandleToolCall.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"tool"}),
	}
	m.registry.MustRegister(m.calls, m.duration)
	return m
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.ErrorS(err, "encoding response")
	}
}

// newHandler wires the tool endpoints:
//
//	POST /tool     execute a tool call
//	GET  /schema   tool schema for agent registration
//	GET  /health   liveness check
//	GET  /metrics  Prometheus metrics
func newHandler(cfg ServerConfig, m *metrics) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/tool", func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				klog.Errorf("panic in /tool: %v\n%s", rec, string(debug.Stack()))
				m.calls.WithLabelValues("", "panic").Inc()
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBodyBytes)
		defer r.Body.Close()

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req funcalg.ToolRequest
		if err := dec.Decode(&req); err != nil {
			m.calls.WithLabelValues("", "bad_request").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Ensure there's no trailing junk.
		if dec.More() {
			m.calls.WithLabelValues(req.Tool, "bad_request").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
			return
		}

		start := time.Now()
		resp := funcalg.HandleToolCall(req)
		m.duration.WithLabelValues(req.Tool).Observe(time.Since(start).Seconds())

		outcome := "ok"
		if resp.Error != "" {
			outcome = "error"
		}
		m.calls.WithLabelValues(req.Tool, outcome).Inc()
		klog.V(2).InfoS("tool call", "tool", req.Tool, "outcome", outcome, "elapsed", time.Since(start))

		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, funcalg.ToolSpec())
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))

	return mux
}

// serve runs the server until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, cfg ServerConfig) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(cfg, newMetrics()),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		ReadTimeout:       cfg.ReadTimeout.Duration,
		WriteTimeout:      cfg.WriteTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
	}

	errc := make(chan error, 1)
	go func() {
		klog.Infof("funcalg tool server listening on %s", cfg.Addr)
		klog.Infof("  POST /tool     execute a tool call")
		klog.Infof("  GET  /schema   tool schema")
		klog.Infof("  GET  /health   health check")
		klog.Infof("  GET  /metrics  Prometheus metrics")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	klog.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Duration)
	defer cancel()
	return srv.Shutdown(sctx)
}
