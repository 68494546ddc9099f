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

package service

import (
	"context"
	"fmt"
	"time"
)

const readinessTimeout = 2 * time.Second

// Pinger is any backing dependency that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) error
}

// HealthCheckService is the default implementation.
type HealthCheckService struct {
	store Pinger
}

// NewHealthCheckService returns a service that checks store connectivity.
func NewHealthCheckService(store Pinger) HealthCheckServiceInterface {
	return &HealthCheckService{store: store}
}

func (h *HealthCheckService) CheckReadiness(ctx context.Context) error {
	if h.store == nil {
		return fmt.Errorf("alumni store is not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		return fmt.Errorf("alumni store connectivity check failed: %w", err)
	}
	return nil
}
