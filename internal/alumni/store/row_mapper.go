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
	"strings"

	"github.com/pkg/errors"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/system/utils"
)

// rowReader accumulates the first coercion failure so a mapping reads top to bottom.
type rowReader struct {
	row map[string]interface{}
	err error
}

func (r *rowReader) str(column string) *string {
	if r.err != nil {
		return nil
	}
	value, err := utils.CoerceString(r.row[column])
	if err != nil {
		r.err = errors.Wrapf(ErrMalformedRow, "column %s: %v", column, err)
		return nil
	}
	return value
}

func (r *rowReader) integer(column string) *int {
	if r.err != nil {
		return nil
	}
	value, err := utils.CoerceInt(r.row[column])
	if err != nil {
		r.err = errors.Wrapf(ErrMalformedRow, "column %s: %v", column, err)
		return nil
	}
	return value
}

func mapAlumniRow(row map[string]interface{}) (model.AlumniRecord, error) {
	r := &rowReader{row: row}

	id := r.str("id")
	fullName := r.str("full_name")
	record := model.AlumniRecord{
		Email:           r.str("email"),
		Industry:        r.str("industry"),
		GraduationYear:  r.integer("graduation_year"),
		CrossingYear:    r.integer("crossing_year"),
		Chapter:         r.str("chapter"),
		LineOrder:       r.integer("line_order"),
		LineLabel:       r.str("line_label"),
		CurrentCompany:  r.str("current_company"),
		CurrentPosition: r.str("current_position"),
		Location:        r.str("location"),
		LinkedInURL:     r.str("linkedin_url"),
		AvatarURL:       r.str("avatar_url"),
		UserID:          r.str("user_id"),
	}
	if r.err != nil {
		return model.AlumniRecord{}, r.err
	}
	if id == nil || strings.TrimSpace(*id) == "" {
		return model.AlumniRecord{}, errors.Wrap(ErrMalformedRow, "alumni row without id")
	}
	record.ID = *id
	if fullName != nil {
		record.FullName = *fullName
	}
	return record, nil
}

func mapProfileRow(row map[string]interface{}) (model.MemberProfile, error) {
	r := &rowReader{row: row}
	profile := model.MemberProfile{
		UserID:       r.str("user_id"),
		Email:        r.str("email"),
		CrossingYear: r.integer("crossing_year"),
		Chapter:      r.str("chapter"),
		LineOrder:    r.integer("line_order"),
	}
	if r.err != nil {
		return model.MemberProfile{}, r.err
	}
	return profile, nil
}

func mapAlumniRows(rows []map[string]interface{}) ([]model.AlumniRecord, error) {
	records := make([]model.AlumniRecord, 0, len(rows))
	for i, row := range rows {
		record, err := mapAlumniRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "alumni row %d", i)
		}
		records = append(records, record)
	}
	return records, nil
}

func mapProfileRows(rows []map[string]interface{}) ([]model.MemberProfile, error) {
	profiles := make([]model.MemberProfile, 0, len(rows))
	for i, row := range rows {
		profile, err := mapProfileRow(row)
		if err != nil {
			return nil, errors.Wrapf(err, "profile row %d", i)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
