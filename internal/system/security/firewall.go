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
	"net/http"
	"strconv"

	"github.com/kappakonnect/alumni-service/internal/system/cache"
	"github.com/kappakonnect/alumni-service/internal/system/config"
	syscontext "github.com/kappakonnect/alumni-service/internal/system/context"
	"github.com/kappakonnect/alumni-service/internal/system/errors"
	"github.com/kappakonnect/alumni-service/internal/system/log"
	"github.com/kappakonnect/alumni-service/internal/system/metrics"
	"github.com/kappakonnect/alumni-service/internal/system/utils"
)

type blockedResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Firewall rejects abusive or malicious requests before they reach the API.
type Firewall struct {
	counters        *cache.Cache
	maxRequests     int
	retryAfter      string
	threatDetection bool
	metrics         *metrics.AlumniMetrics
}

// NewFirewall creates a firewall from the security configuration.
func NewFirewall(cfg config.SecurityConfig, m *metrics.AlumniMetrics) *Firewall {
	window := cfg.RateLimit.WindowDuration()
	return &Firewall{
		counters:        cache.NewCache(window, 2*window),
		maxRequests:     cfg.RateLimit.MaxRequests,
		retryAfter:      strconv.Itoa(int(window.Seconds())),
		threatDetection: cfg.ThreatDetectionEnabled,
		metrics:         m,
	}
}

// Middleware applies, in order, the per-client rate limit, the sensitive file and
// path traversal checks, and the query parameter threat checks.
func (f *Firewall) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := utils.ClientIP(r)

		if f.maxRequests > 0 && f.counters.Hit(clientIP) > f.maxRequests {
			f.block(r, clientIP, ReasonRateLimited)
			w.Header().Set("Retry-After", f.retryAfter)
			utils.WriteJSON(w, http.StatusTooManyRequests, blockedResponse{
				Error:   errors.RATE_LIMITED.Message,
				Message: errors.RATE_LIMITED.Description,
			})
			return
		}

		if !f.threatDetection {
			next.ServeHTTP(w, r)
			return
		}

		path := r.URL.EscapedPath()
		if IsSensitiveFile(path) || IsSensitiveFile(r.URL.Path) {
			f.block(r, clientIP, ReasonSensitiveFile)
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		if IsPathTraversal(path) || IsPathTraversal(r.URL.Path) {
			f.block(r, clientIP, ReasonPathTraversal)
			utils.WriteJSON(w, http.StatusForbidden, blockedResponse{
				Error:   errors.REQUEST_BLOCKED.Message,
				Message: "Path traversal attempt detected and blocked.",
			})
			return
		}

		if !isAttendanceCheckIn(r.URL.Path, r.URL.Query()) {
			if reason, found := DetectQueryThreat(r.URL.RawQuery); found {
				f.block(r, clientIP, reason)
				utils.WriteJSON(w, http.StatusForbidden, blockedResponse{
					Error:   errors.REQUEST_BLOCKED.Message,
					Message: errors.REQUEST_BLOCKED.Description,
				})
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (f *Firewall) block(r *http.Request, clientIP, reason string) {
	f.metrics.RecordBlocked(reason)
	logger := log.GetLogger().WithContext(r.Context())
	logger.Warn("Request blocked", log.String("reason", reason), log.String("client_ip", clientIP),
		log.String("method", r.Method), log.String("path", r.URL.Path))
	logger.Audit(log.AuditEvent{
		InitiatorID:   clientIP,
		InitiatorType: log.InitiatorTypeClient,
		TargetID:      r.URL.Path,
		TargetType:    log.TargetTypeRequest,
		ActionID:      log.ActionRequestBlocked,
		TraceID:       syscontext.GetTraceID(r.Context()),
		Data:          map[string]string{"reason": reason},
	})
}
