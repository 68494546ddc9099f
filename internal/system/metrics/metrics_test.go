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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlumniMetrics(t *testing.T) {
	m, err := NewAlumniMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	m.RecordRun(OutcomeSuccess)
	m.RecordRun(OutcomeSuccess)
	m.RecordSuppressedError("alumni", "not_provisioned")
	m.RecordDropped(StagePlaceholder, 3)
	m.RecordDropped(StageDuplicate, 0)
	m.RecordBlocked("sql_injection")
	m.ObserveDuration(0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.reconcileRunsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.suppressedErrors.WithLabelValues("alumni", "not_provisioned")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.recordsDroppedTotal.WithLabelValues(StagePlaceholder)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.recordsDroppedTotal), "zero counts create no series")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.blockedRequestsTotal.WithLabelValues("sql_injection")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.reconcileDuration))
}

func TestAlumniMetrics_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewAlumniMetrics(registry)
	require.NoError(t, err)

	_, err = NewAlumniMetrics(registry)
	assert.Error(t, err)
}

func TestAlumniMetrics_NilIsNoop(t *testing.T) {
	var m *AlumniMetrics
	assert.NotPanics(t, func() {
		m.RecordRun(OutcomeDenied)
		m.RecordSuppressedError("profiles", "query_failed")
		m.RecordDropped(StageLineCollapse, 1)
		m.ObserveDuration(1)
		m.RecordBlocked("rate_limited")
	})
}
