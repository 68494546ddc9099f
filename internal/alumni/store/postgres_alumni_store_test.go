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
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
)

type recordedQuery struct {
	subject string
	query   string
	args    []interface{}
}

type fakeDBClient struct {
	rows    []map[string]interface{}
	err     error
	queries []recordedQuery
	pingErr error
}

func (f *fakeDBClient) ExecuteQuery(ctx context.Context, query string, args ...interface{}) ([]map[string]interface{}, error) {
	return f.ExecuteQueryAs(ctx, "", query, args...)
}

func (f *fakeDBClient) ExecuteQueryAs(ctx context.Context, subject string, query string,
	args ...interface{}) ([]map[string]interface{}, error) {

	if _, ok := ctx.Deadline(); !ok {
		return nil, fmt.Errorf("query issued without a deadline")
	}
	f.queries = append(f.queries, recordedQuery{subject: subject, query: query, args: args})
	return f.rows, f.err
}

func (f *fakeDBClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeDBClient) Close() error { return nil }

func (f *fakeDBClient) InitSchema(context.Context, string) error { return nil }

var member = model.Identity{ID: "3f1c9a4e-0000-4000-8000-000000000001"}

func TestPostgresAlumniStore_ListAlumni(t *testing.T) {
	db := &fakeDBClient{rows: []map[string]interface{}{
		{"id": "b", "full_name": "Bee", "graduation_year": int64(2024)},
		{"id": "a", "full_name": "Ay", "graduation_year": int64(2020)},
	}}
	s := NewPostgresAlumniStore(db, time.Second)

	records, err := s.ListAlumni(context.Background(), member)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)

	require.Len(t, db.queries, 1)
	assert.Equal(t, member.ID, db.queries[0].subject)
	assert.Contains(t, db.queries[0].query, "ORDER BY graduation_year DESC")
}

func TestPostgresAlumniStore_ListMemberProfiles(t *testing.T) {
	db := &fakeDBClient{rows: []map[string]interface{}{
		{"user_id": "u-1", "email": "x@example.com", "crossing_year": int64(2024), "chapter": "Xi", "line_order": int64(2)},
	}}
	s := NewPostgresAlumniStore(db, time.Second)

	profiles, err := s.ListMemberProfiles(context.Background(), member)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, 2, *profiles[0].LineOrder)
	assert.Contains(t, db.queries[0].query, "FROM profiles")
}

func TestPostgresAlumniStore_ListFeaturedAlumniIDs(t *testing.T) {
	db := &fakeDBClient{rows: []map[string]interface{}{{"id": "a"}, {"id": nil}, {"id": []byte("b")}}}
	s := NewPostgresAlumniStore(db, time.Second)

	ids, err := s.ListFeaturedAlumniIDs(context.Background(), member)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestPostgresAlumniStore_GetAlumniByID(t *testing.T) {
	db := &fakeDBClient{rows: []map[string]interface{}{{"id": "a", "full_name": "Ay"}}}
	s := NewPostgresAlumniStore(db, time.Second)

	record, err := s.GetAlumniByID(context.Background(), member, "a")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Ay", record.FullName)
	assert.Equal(t, []interface{}{"a"}, db.queries[0].args)

	db.rows = nil
	record, err = s.GetAlumniByID(context.Background(), member, "missing")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestPostgresAlumniStore_MalformedRow(t *testing.T) {
	db := &fakeDBClient{rows: []map[string]interface{}{{"full_name": "No Id"}}}
	s := NewPostgresAlumniStore(db, time.Second)

	_, err := s.ListAlumni(context.Background(), member)
	assert.True(t, errors.Is(err, ErrMalformedRow))
}

func TestPostgresAlumniStore_ClassifiesErrors(t *testing.T) {
	db := &fakeDBClient{err: &pq.Error{Code: "42P01", Message: `relation "alumni" does not exist`}}
	s := NewPostgresAlumniStore(db, time.Second)

	_, err := s.ListAlumni(context.Background(), member)
	assert.True(t, errors.Is(err, ErrNotProvisioned))
}

func TestClassifyPostgresError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"undefined table", &pq.Error{Code: "42P01"}, ErrNotProvisioned},
		{"insufficient privilege", &pq.Error{Code: "42501"}, ErrPermissionDenied},
		{"wrapped insufficient privilege", errors.Wrap(&pq.Error{Code: "42501"}, "tx"), ErrPermissionDenied},
		{"permission denied message", fmt.Errorf("ERROR: Permission denied for table alumni"), ErrPermissionDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(classifyPostgresError(tt.err, "op"), tt.target))
		})
	}

	other := classifyPostgresError(fmt.Errorf("connection reset"), "list alumni")
	assert.False(t, errors.Is(other, ErrNotProvisioned))
	assert.False(t, errors.Is(other, ErrPermissionDenied))
	assert.Contains(t, other.Error(), "list alumni: connection reset")
}

func TestPostgresAlumniStore_Ping(t *testing.T) {
	db := &fakeDBClient{pingErr: fmt.Errorf("down")}
	assert.EqualError(t, NewPostgresAlumniStore(db, 0).Ping(context.Background()), "down")
}
