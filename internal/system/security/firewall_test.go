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

package security

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappakonnect/alumni-service/internal/system/config"
	"github.com/kappakonnect/alumni-service/internal/system/log"
	"github.com/kappakonnect/alumni-service/internal/system/metrics"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func newTestFirewall(t *testing.T, maxRequests int) (http.Handler, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	m, err := metrics.NewAlumniMetrics(registry)
	require.NoError(t, err)
	fw := NewFirewall(config.SecurityConfig{
		ThreatDetectionEnabled: true,
		RateLimit:              config.RateLimitConfig{Window: "1m", MaxRequests: maxRequests},
	}, m)
	return fw.Middleware(okHandler), registry
}

func serve(h http.Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "http://alumni.test"+target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFirewall_AllowsOrdinaryRequests(t *testing.T) {
	h, _ := newTestFirewall(t, 100)

	for _, target := range []string{
		"/api/v1/alumni",
		"/api/v1/alumni?featured=true",
		"/api/v1/alumni/7c6e3a52-5a0f-4c51-9d7a-2f4f2f0f1d11",
		"/attendance?event=7c6e3a52-5a0f-4c51-9d7a-2f4f2f0f1d11&checkin=true",
		"/api/v1/alumni?location=Washington%2C%20DC&industry=Law",
	} {
		assert.Equal(t, http.StatusOK, serve(h, target, nil).Code, target)
	}
}

func TestFirewall_RateLimit(t *testing.T) {
	h, registry := newTestFirewall(t, 3)
	client := map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, serve(h, "/api/v1/alumni", client).Code)
	}

	rec := serve(h, "/api/v1/alumni", client)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded", body["error"])
	assert.Equal(t, "Rate limit exceeded. Too many requests from this IP.", body["message"])

	other := serve(h, "/api/v1/alumni", map[string]string{"X-Real-IP": "198.51.100.2"})
	assert.Equal(t, http.StatusOK, other.Code, "limits are per client")

	expected := `
# HELP waf_blocked_requests_total Requests rejected by the request firewall
# TYPE waf_blocked_requests_total counter
waf_blocked_requests_total{reason="rate_limited"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "waf_blocked_requests_total"))
}

func TestFirewall_SensitiveFiles(t *testing.T) {
	h, _ := newTestFirewall(t, 100)

	for _, target := range []string{"/.env", "/.env.local", "/.git/config", "/config.json",
		"/package.json", "/yarn.lock", "/backup.sql", "/server.log"} {
		rec := serve(h, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestFirewall_PathTraversal(t *testing.T) {
	h, _ := newTestFirewall(t, 100)

	for _, target := range []string{"/static/..%2f..%2fetc/passwd", "/static/..%5cwindows"} {
		rec := serve(h, target, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Path traversal attempt detected and blocked.")
	}
}

func TestFirewall_QueryThreats(t *testing.T) {
	h, registry := newTestFirewall(t, 100)

	for _, query := range []string{
		"q=" + url.QueryEscape("' OR 1=1"),
		"q=" + url.QueryEscape("1 UNION SELECT password FROM users"),
		"q=" + url.QueryEscape("<script>alert(1)</script>"),
		"next=javascript:alert(document.cookie)",
		"file=" + url.QueryEscape("x; cat /etc/passwd"),
		"cmd=%24%28whoami%29",
	} {
		rec := serve(h, "/api/v1/alumni?"+query, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, query)
		assert.Contains(t, rec.Body.String(), "Malicious request detected and blocked.")
	}

	count, err := testutil.GatherAndCount(registry, "waf_blocked_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "sql_injection, xss and command_injection series")
}

func TestFirewall_AttendanceAllowListIsExact(t *testing.T) {
	h, _ := newTestFirewall(t, 100)

	rec := serve(h, "/attendance?event=1&checkin=true&cmd=%24%28whoami%29", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestFirewall_ThreatDetectionDisabled(t *testing.T) {
	fw := NewFirewall(config.SecurityConfig{RateLimit: config.RateLimitConfig{MaxRequests: 10}}, nil)
	h := fw.Middleware(okHandler)

	assert.Equal(t, http.StatusOK, serve(h, "/api/v1/alumni?q=%3Cscript%3E", nil).Code)
}

func TestDetectQueryThreat(t *testing.T) {
	tests := []struct {
		query  string
		reason string
		found  bool
	}{
		{"", "", false},
		{"featured=true&page=2", "", false},
		{"a=1&&b=2", "", false},
		{"q=select+name+from+alumni", ReasonSQLInjection, true},
		{"q=abc--", ReasonSQLInjection, true},
		{"q=%3Ciframe%20src%3Dx%3E", ReasonXSS, true},
		{"q=%3Cimg%20onerror%3Dx%3E", ReasonXSS, true},
		{"q=a|b", ReasonCommandInjection, true},
		{"%24%7Bjndi%7D=1", ReasonCommandInjection, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			reason, found := DetectQueryThreat(tt.query)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestIsPathChecks(t *testing.T) {
	assert.True(t, IsSensitiveFile("/.ENV"))
	assert.False(t, IsSensitiveFile("/api/v1/alumni/export"))
	assert.True(t, IsPathTraversal("/a/../b"))
	assert.True(t, IsPathTraversal(`/a/..\b`))
	assert.False(t, IsPathTraversal("/a/b..c"))
}
