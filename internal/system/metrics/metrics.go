/*
 * Copyright (c) 2026, KappaKonnect.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package metrics exposes Prometheus instrumentation for the alumni directory.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for reconcile runs.
const (
	OutcomeSuccess    = "success"
	OutcomeSuppressed = "suppressed"
	OutcomeDenied     = "denied"
	OutcomeAnonymous  = "anonymous"
)

// Stage labels for dropped records.
const (
	StagePlaceholder  = "placeholder"
	StageDuplicate    = "duplicate"
	StageLineCollapse = "line_collapse"
)

// AlumniMetrics contains Prometheus metrics for the reconciliation pipeline and the request firewall.
type AlumniMetrics struct {
	reconcileRunsTotal   *prometheus.CounterVec
	suppressedErrors     *prometheus.CounterVec
	recordsDroppedTotal  *prometheus.CounterVec
	reconcileDuration    prometheus.Histogram
	blockedRequestsTotal *prometheus.CounterVec
}

// NewAlumniMetrics creates the metrics and registers them with registry.
func NewAlumniMetrics(registry prometheus.Registerer) (*AlumniMetrics, error) {
	m := &AlumniMetrics{
		reconcileRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alumni_reconcile_runs_total",
				Help: "Total number of alumni reconciliation runs",
			},
			[]string{"outcome"},
		),
		suppressedErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alumni_suppressed_errors_total",
				Help: "Backing store errors downgraded to an empty result",
			},
			[]string{"source", "reason"}, // source: alumni, profiles
		),
		recordsDroppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "alumni_records_dropped_total",
				Help: "Alumni rows removed by the reconciliation pipeline",
			},
			[]string{"stage"},
		),
		reconcileDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "alumni_reconcile_duration_seconds",
				Help:    "Time taken to fetch and reconcile the alumni directory",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
		),
		blockedRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waf_blocked_requests_total",
				Help: "Requests rejected by the request firewall",
			},
			[]string{"reason"},
		),
	}

	collectors := []prometheus.Collector{
		m.reconcileRunsTotal,
		m.suppressedErrors,
		m.recordsDroppedTotal,
		m.reconcileDuration,
		m.blockedRequestsTotal,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

var (
	defaultMetrics *AlumniMetrics
	defaultOnce    sync.Once
	defaultErr     error
)

// Default returns the process-wide metrics registered with the default Prometheus registerer.
func Default() (*AlumniMetrics, error) {
	defaultOnce.Do(func() {
		defaultMetrics, defaultErr = NewAlumniMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics, defaultErr
}

// The recorders below are nil-safe so components can run uninstrumented.

func (m *AlumniMetrics) RecordRun(outcome string) {
	if m == nil {
		return
	}
	m.reconcileRunsTotal.WithLabelValues(outcome).Inc()
}

func (m *AlumniMetrics) RecordSuppressedError(source, reason string) {
	if m == nil {
		return
	}
	m.suppressedErrors.WithLabelValues(source, reason).Inc()
}

func (m *AlumniMetrics) RecordDropped(stage string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.recordsDroppedTotal.WithLabelValues(stage).Add(float64(count))
}

func (m *AlumniMetrics) ObserveDuration(seconds float64) {
	if m == nil {
		return
	}
	m.reconcileDuration.Observe(seconds)
}

func (m *AlumniMetrics) RecordBlocked(reason string) {
	if m == nil {
		return
	}
	m.blockedRequestsTotal.WithLabelValues(reason).Inc()
}
