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
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/kappakonnect/alumni-service/internal/alumni/display"
	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/alumni/store"
	syscontext "github.com/kappakonnect/alumni-service/internal/system/context"
	customerrors "github.com/kappakonnect/alumni-service/internal/system/errors"
	"github.com/kappakonnect/alumni-service/internal/system/log"
	"github.com/kappakonnect/alumni-service/internal/system/metrics"
)

// Labels for suppressed store errors.
const (
	SourceAlumni   = "alumni"
	SourceProfiles = "profiles"
	SourceFeatured = "featured"

	ReasonNotProvisioned = "not_provisioned"
	ReasonQueryFailed    = "query_failed"
)

// AlumniServiceInterface defines the operations of the alumni directory.
type AlumniServiceInterface interface {
	GetAlumniList(ctx context.Context, identity *model.Identity) ([]model.CanonicalAlumni, error)
	GetFeaturedAlumni(ctx context.Context, identity *model.Identity) ([]model.CanonicalAlumni, error)
	GetAlumni(ctx context.Context, identity *model.Identity, id string) (*model.CanonicalAlumni, error)
	ExportAlumniCSV(ctx context.Context, identity *model.Identity, w io.Writer) (int, error)
}

// AlumniService reconciles the alumni directory read from the backing store.
type AlumniService struct {
	store   store.AlumniStoreInterface
	metrics *metrics.AlumniMetrics
}

// NewAlumniService creates a service over alumniStore. A nil metrics leaves it uninstrumented.
func NewAlumniService(alumniStore store.AlumniStoreInterface, m *metrics.AlumniMetrics) *AlumniService {
	return &AlumniService{
		store:   alumniStore,
		metrics: m,
	}
}

func isAnonymous(identity *model.Identity) bool {
	return identity == nil || identity.ID == ""
}

// GetAlumniList returns the reconciled directory visible to identity. Store failures
// other than a permission rejection yield an empty directory.
func (s *AlumniService) GetAlumniList(ctx context.Context, identity *model.Identity) ([]model.CanonicalAlumni, error) {
	if isAnonymous(identity) {
		s.metrics.RecordRun(metrics.OutcomeAnonymous)
		return []model.CanonicalAlumni{}, nil
	}

	start := time.Now()
	defer func() { s.metrics.ObserveDuration(time.Since(start).Seconds()) }()

	records, err := s.store.ListAlumni(ctx, *identity)
	if err != nil {
		if denied := s.suppress(ctx, SourceAlumni, err); denied != nil {
			s.metrics.RecordRun(metrics.OutcomeDenied)
			return nil, denied
		}
		s.metrics.RecordRun(metrics.OutcomeSuppressed)
		return []model.CanonicalAlumni{}, nil
	}

	profiles := s.memberProfiles(ctx, *identity)

	alumni, stats := reconcile(records, profiles)
	s.metrics.RecordDropped(metrics.StagePlaceholder, stats.placeholders)
	s.metrics.RecordDropped(metrics.StageDuplicate, stats.duplicates)
	s.metrics.RecordDropped(metrics.StageLineCollapse, stats.collapsed)
	s.metrics.RecordRun(metrics.OutcomeSuccess)

	log.GetLogger().WithContext(ctx).Debug("Reconciled alumni directory",
		log.Int("rows", len(records)), log.Int("profiles", len(profiles)), log.Int("alumni", len(alumni)))
	return alumni, nil
}

// GetFeaturedAlumni returns the featured subset of the directory, most recent crossing first.
func (s *AlumniService) GetFeaturedAlumni(ctx context.Context, identity *model.Identity) ([]model.CanonicalAlumni, error) {
	alumni, err := s.GetAlumniList(ctx, identity)
	if err != nil || len(alumni) == 0 {
		return alumni, err
	}

	ids, err := s.store.ListFeaturedAlumniIDs(ctx, *identity)
	if err != nil {
		if denied := s.suppress(ctx, SourceFeatured, err); denied != nil {
			return nil, denied
		}
		return []model.CanonicalAlumni{}, nil
	}
	featured := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		featured[id] = struct{}{}
	}

	result := make([]model.CanonicalAlumni, 0, len(ids))
	for _, a := range alumni {
		if _, ok := featured[a.ID]; ok {
			result = append(result, a)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		yi, yj := result[i].CrossingYear, result[j].CrossingYear
		if yi == nil || yj == nil {
			return yi != nil && yj == nil
		}
		return *yi > *yj
	})
	return result, nil
}

// GetAlumni returns a single enriched record.
func (s *AlumniService) GetAlumni(ctx context.Context, identity *model.Identity, id string) (*model.CanonicalAlumni, error) {
	traceID := syscontext.GetTraceID(ctx)
	if isAnonymous(identity) {
		return nil, customerrors.NewClientErrorWithTraceID(customerrors.UN_AUTHORIZED, http.StatusUnauthorized, traceID)
	}

	record, err := s.store.GetAlumniByID(ctx, *identity, id)
	switch {
	case errors.Is(err, store.ErrPermissionDenied):
		return nil, customerrors.NewClientErrorWithTraceID(customerrors.PERMISSION_DENIED, http.StatusForbidden, traceID)
	case errors.Is(err, store.ErrNotProvisioned):
		record = nil
	case errors.Is(err, store.ErrMalformedRow):
		return nil, customerrors.NewServerErrorWithTraceID(customerrors.MAP_ROW, err, traceID)
	case err != nil:
		return nil, customerrors.NewServerErrorWithTraceID(customerrors.FETCH_ALUMNI, err, traceID)
	}
	if record == nil || display.IsPlaceholder(record.FullName, record.Email) {
		return nil, customerrors.NewClientErrorWithTraceID(customerrors.ALUMNI_NOT_FOUND, http.StatusNotFound, traceID)
	}

	enriched := enrich([]model.AlumniRecord{*record}, newProfileIndex(s.memberProfiles(ctx, *identity)))
	return &enriched[0], nil
}

// memberProfiles fetches profiles for enrichment. Any failure degrades to no profiles.
func (s *AlumniService) memberProfiles(ctx context.Context, identity model.Identity) []model.MemberProfile {
	profiles, err := s.store.ListMemberProfiles(ctx, identity)
	if err != nil {
		reason := ReasonQueryFailed
		if errors.Is(err, store.ErrNotProvisioned) {
			reason = ReasonNotProvisioned
		}
		s.metrics.RecordSuppressedError(SourceProfiles, reason)
		log.GetLogger().WithContext(ctx).Warn("Member profiles unavailable, continuing without enrichment",
			log.String("reason", reason), log.Error(err))
		return nil
	}
	return profiles
}

// suppress applies the store error policy. It returns the client error to surface for a
// permission rejection and records every other failure as suppressed.
func (s *AlumniService) suppress(ctx context.Context, source string, err error) error {
	logger := log.GetLogger().WithContext(ctx)
	if errors.Is(err, store.ErrPermissionDenied) {
		logger.Warn("Alumni store denied access", log.String("source", source), log.Error(err))
		return customerrors.NewClientErrorWithTraceID(customerrors.PERMISSION_DENIED, http.StatusForbidden,
			syscontext.GetTraceID(ctx))
	}

	reason := ReasonQueryFailed
	if errors.Is(err, store.ErrNotProvisioned) {
		reason = ReasonNotProvisioned
	}
	s.metrics.RecordSuppressedError(source, reason)
	logger.Warn("Alumni store error suppressed, returning empty result",
		log.String("source", source), log.String("reason", reason), log.Error(err))
	return nil
}
