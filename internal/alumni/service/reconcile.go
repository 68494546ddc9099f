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
	"strconv"

	"github.com/kappakonnect/alumni-service/internal/alumni/display"
	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
)

// minNameKeyLength is the shortest first-last key trusted for duplicate detection.
const minNameKeyLength = 4

// reconcileStats counts the rows each stage removed.
type reconcileStats struct {
	placeholders int
	duplicates   int
	collapsed    int
}

// reconcile turns raw alumni rows and member profiles into the canonical directory.
func reconcile(records []model.AlumniRecord, profiles []model.MemberProfile) ([]model.CanonicalAlumni, reconcileStats) {
	var stats reconcileStats

	kept := filterPlaceholders(records)
	stats.placeholders = len(records) - len(kept)

	unique := dedupe(kept)
	stats.duplicates = len(kept) - len(unique)

	enriched := enrich(unique, newProfileIndex(profiles))

	collapsed := collapseLinePositions(enriched)
	stats.collapsed = len(enriched) - len(collapsed)

	return collapsed, stats
}

func filterPlaceholders(records []model.AlumniRecord) []model.AlumniRecord {
	kept := make([]model.AlumniRecord, 0, len(records))
	for _, r := range records {
		if display.IsPlaceholder(r.FullName, r.Email) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

// completenessScore counts the populated contact and career fields of a record.
func completenessScore(r model.AlumniRecord) int {
	score := 0
	for _, field := range []*string{
		r.Email, r.Industry, r.CurrentCompany, r.CurrentPosition, r.Location, r.LinkedInURL, r.AvatarURL,
	} {
		if field != nil && *field != "" {
			score++
		}
	}
	return score
}

func nameKey(fullName string) string {
	key := display.FirstLast(display.NormalizeName(fullName))
	if len(key) < minNameKeyLength {
		return ""
	}
	return key
}

// dedupe merges rows describing the same person. A later duplicate replaces the
// accepted row in place only when it is strictly more complete.
func dedupe(records []model.AlumniRecord) []model.AlumniRecord {
	unique := make([]model.AlumniRecord, 0, len(records))
	seenIDs := make(map[string]struct{}, len(records))
	byEmail := make(map[string]int)
	byName := make(map[string]int)

	replaceIfBetter := func(idx int, candidate model.AlumniRecord) {
		if completenessScore(candidate) > completenessScore(unique[idx]) {
			unique[idx] = candidate
		}
		seenIDs[candidate.ID] = struct{}{}
	}

	for _, r := range records {
		if _, seen := seenIDs[r.ID]; seen {
			continue
		}

		email := display.NormalizeEmail(r.Email)
		if email != "" {
			if idx, ok := byEmail[email]; ok {
				replaceIfBetter(idx, r)
				continue
			}
		}

		key := nameKey(r.FullName)
		if key != "" {
			if idx, ok := byName[key]; ok && email != "" && display.NormalizeEmail(unique[idx].Email) == email {
				replaceIfBetter(idx, r)
				continue
			}
		}

		idx := len(unique)
		unique = append(unique, r)
		seenIDs[r.ID] = struct{}{}
		if email != "" {
			byEmail[email] = idx
		}
		if key != "" {
			if _, taken := byName[key]; !taken {
				byName[key] = idx
			}
		}
	}
	return unique
}

// profileIndex looks up member profiles by user id and by email.
type profileIndex struct {
	byUserID map[string]model.MemberProfile
	byEmail  map[string]model.MemberProfile
}

func newProfileIndex(profiles []model.MemberProfile) profileIndex {
	idx := profileIndex{
		byUserID: make(map[string]model.MemberProfile, len(profiles)),
		byEmail:  make(map[string]model.MemberProfile, len(profiles)),
	}
	for _, p := range profiles {
		if p.UserID != nil && *p.UserID != "" {
			idx.byUserID[*p.UserID] = p
		}
		if email := display.NormalizeEmail(p.Email); email != "" {
			idx.byEmail[email] = p
		}
	}
	return idx
}

func (idx profileIndex) lookup(r model.AlumniRecord) (model.MemberProfile, bool) {
	if r.UserID != nil && *r.UserID != "" {
		p, ok := idx.byUserID[*r.UserID]
		return p, ok
	}
	p, ok := idx.byEmail[display.NormalizeEmail(r.Email)]
	return p, ok
}

// crossingFor selects the crossing source for a record: its own fields when it
// carries a crossing year, else the matched profile, else its own (empty) fields.
func crossingFor(r model.AlumniRecord, idx profileIndex) model.Crossing {
	if r.CrossingYear != nil {
		return r.Crossing()
	}
	if p, ok := idx.lookup(r); ok && p.CrossingYear != nil {
		return p.Crossing()
	}
	return r.Crossing()
}

func enrich(records []model.AlumniRecord, idx profileIndex) []model.CanonicalAlumni {
	enriched := make([]model.CanonicalAlumni, 0, len(records))
	for _, r := range records {
		enriched = append(enriched, model.CanonicalAlumni{
			AlumniRecord:    r,
			CrossingDisplay: display.FormatCrossing(crossingFor(r, idx)),
		})
	}
	return enriched
}

func linePositionKey(a model.CanonicalAlumni) string {
	label := ""
	if a.LineLabel != nil {
		label = display.CanonicalLineLabel(*a.LineLabel)
	}
	if label == "" {
		label = constants.UnlabeledLineBucket
	}
	order := 0
	if a.LineOrder != nil {
		order = *a.LineOrder
	}
	return label + "-" + strconv.Itoa(order) + "-" + display.FirstLast(display.NormalizeName(a.FullName))
}

// collapseLinePositions keeps the most complete record per line position. Groups are
// emitted in the order their key first appeared.
func collapseLinePositions(alumni []model.CanonicalAlumni) []model.CanonicalAlumni {
	collapsed := make([]model.CanonicalAlumni, 0, len(alumni))
	positions := make(map[string]int, len(alumni))
	for _, a := range alumni {
		key := linePositionKey(a)
		if idx, ok := positions[key]; ok {
			if completenessScore(a.AlumniRecord) > completenessScore(collapsed[idx].AlumniRecord) {
				collapsed[idx] = a
			}
			continue
		}
		positions[key] = len(collapsed)
		collapsed = append(collapsed, a)
	}
	return collapsed
}
