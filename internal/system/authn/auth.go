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
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/system/config"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
	syscontext "github.com/kappakonnect/alumni-service/internal/system/context"
	"github.com/kappakonnect/alumni-service/internal/system/errors"
	"github.com/kappakonnect/alumni-service/internal/system/log"
	"github.com/kappakonnect/alumni-service/internal/system/utils"
)

const bearerPrefix = "Bearer "

// Authenticator verifies member session tokens.
type Authenticator struct {
	secret   []byte
	audience string
}

// NewAuthenticator creates an authenticator from the auth configuration.
func NewAuthenticator(cfg config.AuthConfig) *Authenticator {
	return &Authenticator{
		secret:   []byte(cfg.JWTSecret),
		audience: cfg.JWTAudience,
	}
}

// ValidateTokenAndReturnClaims verifies an HS256 token's signature and expiry, and its
// audience when one is configured.
func (a *Authenticator) ValidateTokenAndReturnClaims(token string) (jwt.MapClaims, error) {
	logger := log.GetLogger()
	if len(a.secret) == 0 {
		logger.Debug("Rejecting token because no signing secret is configured.")
		return nil, unauthorizedError("")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		logger.Debug("Token validation failed.", log.Error(err))
		return nil, unauthorizedError("")
	}
	return claims, nil
}

// IdentityFromRequest resolves the caller from the Authorization header. A request
// without the header is anonymous and yields a nil identity.
func (a *Authenticator) IdentityFromRequest(r *http.Request) (*model.Identity, error) {
	traceID := syscontext.GetTraceID(r.Context())
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, unauthorizedError(traceID)
	}

	claims, err := a.ValidateTokenAndReturnClaims(strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
	if err != nil {
		return nil, unauthorizedError(traceID)
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		log.GetLogger().Debug("Token does not carry a subject claim.")
		return nil, unauthorizedError(traceID)
	}
	return &model.Identity{ID: subject}, nil
}

// Middleware attaches the caller's identity to the request context and rejects
// requests carrying an invalid token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := a.IdentityFromRequest(r)
		if err != nil {
			clientIP := utils.ClientIP(r)
			log.GetLogger().WithContext(r.Context()).Audit(log.AuditEvent{
				InitiatorID:   clientIP,
				InitiatorType: log.InitiatorTypeClient,
				TargetID:      r.URL.Path,
				TargetType:    log.TargetTypeRequest,
				ActionID:      log.ActionAuthenticationFailure,
				TraceID:       syscontext.GetTraceID(r.Context()),
			})
			utils.HandleError(w, err)
			return
		}
		if identity != nil {
			r = r.WithContext(WithIdentity(r.Context(), identity))
		}
		next.ServeHTTP(w, r)
	})
}

// WithIdentity stores identity in ctx.
func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	return context.WithValue(ctx, constants.IdentityContextKey, identity)
}

// IdentityFromContext returns the identity stored by the middleware, or nil.
func IdentityFromContext(ctx context.Context) *model.Identity {
	identity, _ := ctx.Value(constants.IdentityContextKey).(*model.Identity)
	return identity
}

func unauthorizedError(traceID string) error {
	return errors.NewClientErrorWithTraceID(errors.UN_AUTHORIZED, http.StatusUnauthorized, traceID)
}
