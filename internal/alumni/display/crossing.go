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

package display

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
)

var lineSeasonPattern = regexp.MustCompile(`(?i)^(spring|fall)\s+(\d{4})`)

// FormatCrossing renders a crossing as "{line}-{chapter}-{yy}" or "{chapter}-{yy}",
// e.g. "3-Xi-24". Returns nil when the crossing year is unknown.
func FormatCrossing(c model.Crossing) *string {
	if c.CrossingYear == nil {
		return nil
	}
	year := *c.CrossingYear
	if year < 0 {
		year = -year
	}
	yearShort := fmt.Sprintf("%02d", year%100)

	chapter := ""
	if c.Chapter != nil {
		chapter = *c.Chapter
	}
	abbrev := ChapterAbbreviation(chapter)

	var formatted string
	if c.LineOrder != nil {
		formatted = fmt.Sprintf("%d-%s-%s", *c.LineOrder, abbrev, yearShort)
	} else {
		formatted = fmt.Sprintf("%s-%s", abbrev, yearShort)
	}
	return &formatted
}

// ChapterAbbreviation shortens a chapter designation such as "Xi Chapter (Howard)".
func ChapterAbbreviation(chapter string) string {
	if strings.HasPrefix(chapter, constants.DefaultChapterAbbreviation) {
		return constants.DefaultChapterAbbreviation
	}
	head := chapter
	if i := strings.IndexFunc(chapter, func(r rune) bool { return unicode.IsSpace(r) || r == '(' }); i >= 0 {
		head = chapter[:i]
	}
	switch {
	case head != "":
		return head
	case chapter != "":
		return chapter
	default:
		return constants.DefaultChapterAbbreviation
	}
}

// CanonicalLineLabel truncates a label like "SPRING 2022 - Golden Gavel Line" to
// "SPRING 2022". Labels without a leading season token are returned trimmed.
func CanonicalLineLabel(label string) string {
	trimmed := strings.TrimSpace(label)
	if m := lineSeasonPattern.FindStringSubmatch(trimmed); m != nil {
		return strings.ToUpper(m[1]) + " " + m[2]
	}
	return trimmed
}
