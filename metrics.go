/*
 *    Copyright 2025 The Pika Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package pika

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pika").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for dispatch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "pika",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics creates middleware that collects Prometheus metrics for dispatches.
//
// Metrics collected:
//   - pika_dispatches_total: Counter of dispatches by method and status
//   - pika_dispatch_duration_seconds: Histogram of dispatch duration by method
//   - pika_dispatch_faults_total: Counter of handler faults by kind
//
// The collectors register on the configured registry when the middleware is
// created, so create it once per registry.
func Metrics(opts ...MetricsOption) Middleware {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(cfg.Registry)
	dispatches := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "dispatches_total",
		Help:        "Total number of dispatches by method and resolved status",
		ConstLabels: cfg.ConstLabels,
	}, []string{"method", "status"})
	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "dispatch_duration_seconds",
		Help:        "Dispatch duration in seconds",
		ConstLabels: cfg.ConstLabels,
		Buckets:     cfg.Buckets,
	}, []string{"method"})
	faults := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   cfg.Namespace,
		Subsystem:   cfg.Subsystem,
		Name:        "dispatch_faults_total",
		Help:        "Total number of handler faults by kind",
		ConstLabels: cfg.ConstLabels,
	}, []string{"kind"})

	return func(next Handler) Handler {
		return func(c *Context) (*Response, error) {
			method := strings.ToUpper(c.Request().Method())
			start := time.Now()

			resp, err := next(c)

			duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
			if err != nil {
				var he *HTTPError
				if errors.As(err, &he) {
					faults.WithLabelValues("http").Inc()
				} else {
					faults.WithLabelValues("unexpected").Inc()
				}
			}
			dispatches.WithLabelValues(method, strconv.Itoa(outcomeStatus(resp, err))).Inc()
			return resp, err
		}
	}
}
