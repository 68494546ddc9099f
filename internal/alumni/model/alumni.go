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

package model

// AlumniRecord is one historical member entry as stored by the backing store.
// Only ID is guaranteed unique; the same person may appear in several rows.
type AlumniRecord struct {
	ID              string  `json:"id"`
	FullName        string  `json:"full_name"`
	Email           *string `json:"email"`
	Industry        *string `json:"industry"`
	GraduationYear  *int    `json:"graduation_year"`
	CrossingYear    *int    `json:"crossing_year"`
	Chapter         *string `json:"chapter"`
	LineOrder       *int    `json:"line_order"`
	LineLabel       *string `json:"line_label"`
	CurrentCompany  *string `json:"current_company"`
	CurrentPosition *string `json:"current_position"`
	Location        *string `json:"location"`
	LinkedInURL     *string `json:"linkedin_url"`
	AvatarURL       *string `json:"avatar_url"`
	UserID          *string `json:"user_id"`
}

// Crossing returns the record's own crossing fields.
func (a AlumniRecord) Crossing() Crossing {
	return Crossing{
		CrossingYear: a.CrossingYear,
		Chapter:      a.Chapter,
		LineOrder:    a.LineOrder,
	}
}

// MemberProfile is the subset of a live member profile used to backfill crossing data.
type MemberProfile struct {
	UserID       *string `json:"user_id"`
	Email        *string `json:"email"`
	CrossingYear *int    `json:"crossing_year"`
	Chapter      *string `json:"chapter"`
	LineOrder    *int    `json:"line_order"`
}

func (p MemberProfile) Crossing() Crossing {
	return Crossing{
		CrossingYear: p.CrossingYear,
		Chapter:      p.Chapter,
		LineOrder:    p.LineOrder,
	}
}

// Crossing describes when and where a member was initiated.
type Crossing struct {
	CrossingYear *int
	Chapter      *string
	LineOrder    *int
}

// CanonicalAlumni is a reconciled alumni record with its computed crossing label.
type CanonicalAlumni struct {
	AlumniRecord
	CrossingDisplay *string `json:"crossing_display"`
}

// Identity is the caller on whose behalf the directory is read.
type Identity struct {
	ID string `json:"id"`
}
