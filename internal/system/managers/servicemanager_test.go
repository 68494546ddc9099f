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

package managers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/alumni/service"
	"github.com/kappakonnect/alumni-service/internal/alumni/store"
	"github.com/kappakonnect/alumni-service/internal/system/authn"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
)

type memoryStore struct {
	alumni []model.AlumniRecord
}

func (m *memoryStore) ListAlumni(context.Context, model.Identity) ([]model.AlumniRecord, error) {
	return m.alumni, nil
}

func (m *memoryStore) ListMemberProfiles(context.Context, model.Identity) ([]model.MemberProfile, error) {
	return nil, nil
}

func (m *memoryStore) ListFeaturedAlumniIDs(context.Context, model.Identity) ([]string, error) {
	return nil, nil
}

func (m *memoryStore) GetAlumniByID(context.Context, model.Identity, string) (*model.AlumniRecord, error) {
	return nil, nil
}

func (m *memoryStore) Ping(context.Context) error { return nil }

type staticProvider struct {
	store store.AlumniStoreInterface
}

func (p staticProvider) GetAlumniStore() (store.AlumniStoreInterface, error) { return p.store, nil }

func (p staticProvider) GetAlumniService() (service.AlumniServiceInterface, error) {
	return service.NewAlumniService(p.store, nil), nil
}

func TestRegisterServices(t *testing.T) {
	mux := http.NewServeMux()
	alumniStore := &memoryStore{alumni: []model.AlumniRecord{{ID: "a", FullName: "Jordan Smith"}}}
	require.NoError(t, NewServiceManager(mux, staticProvider{store: alumniStore}).RegisterServices(constants.ApiBasePath))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alumni", nil)
	req = req.WithContext(authn.WithIdentity(req.Context(), &model.Identity{ID: "member"}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []model.CanonicalAlumni
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "a", body[0].ID)

	for _, path := range []string{"/health", "/ready"} {
		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/alumni/"+"00000000-0000-4000-8000-000000000000", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
