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

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/kappakonnect/alumni-service/internal/system/errors"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:4000", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.2:4000", "198.51.100.4"},
		{"cloudflare", map[string]string{"CF-Connecting-IP": "192.0.2.9"}, "10.0.0.2:4000", "192.0.2.9"},
		{"remote addr", nil, "10.0.0.2:4000", "10.0.0.2"},
		{"remote without port", nil, "10.0.0.3", "10.0.0.3"},
		{"unknown", nil, "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, ClientIP(req))
		})
	}
}

func TestHandleError_ClientError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, customerrors.NewClientErrorWithTraceID(customerrors.ALUMNI_NOT_FOUND, http.StatusNotFound, "trace-1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body customerrors.ErrorMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, customerrors.ALUMNI_NOT_FOUND.Code, body.Code)
	assert.Equal(t, "trace-1", body.TraceID)
}

func TestHandleError_ServerErrorHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, customerrors.NewServerErrorWithTraceID(customerrors.FETCH_ALUMNI,
		fmt.Errorf("password authentication failed for user reader"), "trace-2"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), customerrors.FETCH_ALUMNI.Code)
}

func TestHandleError_UnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "boom")
}
