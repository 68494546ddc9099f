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
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
	"github.com/kappakonnect/alumni-service/internal/system/database/client"
	"github.com/kappakonnect/alumni-service/internal/system/database/scripts"
	"github.com/kappakonnect/alumni-service/internal/system/log"
)

// SQLSTATE codes the store distinguishes.
const (
	pgUndefinedTable         = "42P01"
	pgInsufficientPrivilege  = "42501"
	permissionDeniedFragment = "permission denied"
)

// PostgresAlumniStore reads the alumni directory from PostgreSQL. Every query runs
// with the caller's subject claim set so row-level security applies.
type PostgresAlumniStore struct {
	dbClient client.DBClientInterface
	timeout  time.Duration
}

// NewPostgresAlumniStore creates a store over an open database client.
func NewPostgresAlumniStore(dbClient client.DBClientInterface, timeout time.Duration) *PostgresAlumniStore {
	return &PostgresAlumniStore{
		dbClient: dbClient,
		timeout:  timeout,
	}
}

func (s *PostgresAlumniStore) query(ctx context.Context, identity model.Identity, op, query string,
	args ...interface{}) ([]map[string]interface{}, error) {

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	rows, err := s.dbClient.ExecuteQueryAs(ctx, identity.ID, query, args...)
	if err != nil {
		log.GetLogger().WithContext(ctx).Debug("Alumni store query failed",
			log.String("operation", op), log.Error(err))
		return nil, classifyPostgresError(err, op)
	}
	return rows, nil
}

// ListAlumni returns every alumni row ordered by graduation year, newest first.
func (s *PostgresAlumniStore) ListAlumni(ctx context.Context, identity model.Identity) ([]model.AlumniRecord, error) {
	rows, err := s.query(ctx, identity, "list alumni", scripts.ListAlumni[constants.DataSourcePostgres])
	if err != nil {
		return nil, err
	}
	return mapAlumniRows(rows)
}

// ListMemberProfiles returns the crossing columns of every member profile.
func (s *PostgresAlumniStore) ListMemberProfiles(ctx context.Context, identity model.Identity) ([]model.MemberProfile, error) {
	rows, err := s.query(ctx, identity, "list member profiles", scripts.ListMemberProfiles[constants.DataSourcePostgres])
	if err != nil {
		return nil, err
	}
	return mapProfileRows(rows)
}

// ListFeaturedAlumniIDs returns the ids of alumni flagged as featured by chapter leadership.
func (s *PostgresAlumniStore) ListFeaturedAlumniIDs(ctx context.Context, identity model.Identity) ([]string, error) {
	rows, err := s.query(ctx, identity, "list featured alumni", scripts.ListFeaturedAlumniIDs[constants.DataSourcePostgres])
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		r := &rowReader{row: row}
		id := r.str("id")
		if r.err != nil {
			return nil, r.err
		}
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids, nil
}

func (s *PostgresAlumniStore) GetAlumniByID(ctx context.Context, identity model.Identity, id string) (*model.AlumniRecord, error) {
	rows, err := s.query(ctx, identity, "get alumni", scripts.GetAlumniByID[constants.DataSourcePostgres], id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	record, err := mapAlumniRow(rows[0])
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *PostgresAlumniStore) Ping(ctx context.Context) error {
	return s.dbClient.Ping(ctx)
}

// classifyPostgresError maps driver errors onto the store's error taxonomy.
func classifyPostgresError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUndefinedTable:
			return errors.Wrapf(ErrNotProvisioned, "%s: %s", op, pqErr.Message)
		case pgInsufficientPrivilege:
			return errors.Wrapf(ErrPermissionDenied, "%s: %s", op, pqErr.Message)
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), permissionDeniedFragment) {
		return errors.Wrapf(ErrPermissionDenied, "%s: %v", op, err)
	}
	return errors.Wrap(err, op)
}
