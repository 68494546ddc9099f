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

package authn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/system/config"
	customerrors "github.com/kappakonnect/alumni-service/internal/system/errors"
)

const (
	testSecret  = "test-signing-secret"
	testSubject = "3f1c9a4e-0000-4000-8000-000000000001"
)

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub": testSubject,
		"aud": "authenticated",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func requestWith(authHeader string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alumni", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func TestIdentityFromRequest_ValidToken(t *testing.T) {
	a := NewAuthenticator(config.AuthConfig{JWTSecret: testSecret, JWTAudience: "authenticated"})
	token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())

	identity, err := a.IdentityFromRequest(requestWith("Bearer " + token))
	require.NoError(t, err)
	assert.Equal(t, &model.Identity{ID: testSubject}, identity)
}

func TestIdentityFromRequest_NoHeaderIsAnonymous(t *testing.T) {
	a := NewAuthenticator(config.AuthConfig{JWTSecret: testSecret})

	identity, err := a.IdentityFromRequest(requestWith(""))
	assert.NoError(t, err)
	assert.Nil(t, identity)
}

func TestIdentityFromRequest_Rejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	noExp := validClaims()
	delete(noExp, "exp")
	noSub := validClaims()
	delete(noSub, "sub")
	wrongAud := validClaims()
	wrongAud["aud"] = "anon"

	tests := []struct {
		name   string
		header string
	}{
		{"basic scheme", "Basic dXNlcjpwYXNz"},
		{"malformed token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims())},
		{"unexpected algorithm", "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), validClaims())},
		{"expired", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired)},
		{"missing expiry", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noExp)},
		{"missing subject", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSub)},
		{"wrong audience", "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), wrongAud)},
	}

	a := NewAuthenticator(config.AuthConfig{JWTSecret: testSecret, JWTAudience: "authenticated"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := a.IdentityFromRequest(requestWith(tt.header))
			assert.Nil(t, identity)

			var clientErr *customerrors.ClientError
			require.True(t, errors.As(err, &clientErr))
			assert.Equal(t, http.StatusUnauthorized, clientErr.StatusCode)
		})
	}
}

func TestValidateToken_AudienceOptional(t *testing.T) {
	a := NewAuthenticator(config.AuthConfig{JWTSecret: testSecret})
	claims := validClaims()
	claims["aud"] = "anything"

	_, err := a.ValidateTokenAndReturnClaims(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims))
	assert.NoError(t, err)
}

func TestValidateToken_NoSecretRejectsEverything(t *testing.T) {
	a := NewAuthenticator(config.AuthConfig{})

	_, err := a.ValidateTokenAndReturnClaims(signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	a := NewAuthenticator(config.AuthConfig{JWTSecret: testSecret})
	var seen *model.Identity
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWith("Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims())))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, testSubject, seen.ID)

	seen = nil
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWith(""))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, seen)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWith("Bearer garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), customerrors.UN_AUTHORIZED.Code)
}

func TestIdentityFromContext_Empty(t *testing.T) {
	assert.Nil(t, IdentityFromContext(context.Background()))
}
