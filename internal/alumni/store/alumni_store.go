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

package store

import (
	"context"

	"github.com/pkg/errors"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
)

// AlumniStoreInterface is the read-only view of the backing store used by the alumni service.
type AlumniStoreInterface interface {
	// ListAlumni returns every alumni row ordered by graduation year, newest first.
	ListAlumni(ctx context.Context, identity model.Identity) ([]model.AlumniRecord, error)
	ListMemberProfiles(ctx context.Context, identity model.Identity) ([]model.MemberProfile, error)
	ListFeaturedAlumniIDs(ctx context.Context, identity model.Identity) ([]string, error)
	// GetAlumniByID returns nil, nil when no row matches.
	GetAlumniByID(ctx context.Context, identity model.Identity, id string) (*model.AlumniRecord, error)
	Ping(ctx context.Context) error
}

var (
	// ErrNotProvisioned means the alumni tables do not exist in this environment.
	ErrNotProvisioned = errors.New("alumni store is not provisioned")
	// ErrPermissionDenied means the store rejected the caller.
	ErrPermissionDenied = errors.New("permission denied by the alumni store")
	// ErrMalformedRow means a row could not be mapped onto the model.
	ErrMalformedRow = errors.New("malformed row")
)

// Column projections shared by every backend.
var (
	AlumniColumns = []string{
		"id", "full_name", "email", "industry", "graduation_year", "crossing_year", "chapter",
		"line_order", "line_label", "current_company", "current_position", "location",
		"linkedin_url", "avatar_url", "user_id",
	}
	ProfileColumns = []string{"user_id", "email", "crossing_year", "chapter", "line_order"}
)
