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

// Package display holds the pure formatting and normalization helpers shared by the
// reconciliation pipeline and the API layer.
package display

import (
	"regexp"
	"strings"

	"github.com/kappakonnect/alumni-service/internal/system/constants"
)

var (
	nameSuffixPattern    = regexp.MustCompile(`\b(jr|sr|ii|iii|iv|v)\b\.?`)
	middleInitialPattern = regexp.MustCompile(`\b[a-z]\.\s*`)
	punctuationPattern   = regexp.MustCompile(`[^\w\s]`)
)

// NormalizeName lower-cases a name, collapses whitespace and strips generational
// suffixes, middle initials and punctuation.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}
	normalized := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	normalized = nameSuffixPattern.ReplaceAllString(normalized, "")
	normalized = middleInitialPattern.ReplaceAllString(normalized, "")
	normalized = punctuationPattern.ReplaceAllString(normalized, "")
	return strings.TrimSpace(normalized)
}

// FirstLast reduces a normalized name to its first and last tokens.
func FirstLast(normalized string) string {
	parts := strings.Fields(normalized)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return parts[0] + " " + parts[len(parts)-1]
	}
}

// NormalizeEmail returns the lookup form of an email address, or "" when absent.
func NormalizeEmail(email *string) string {
	if email == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*email))
}

// IsPlaceholder reports whether a row marks an intentionally skipped line position.
func IsPlaceholder(fullName string, email *string) bool {
	if NormalizeName(fullName) == constants.PlaceholderName {
		return true
	}
	lowered := strings.ToLower(fullName)
	if strings.Contains(lowered, "do not exist") || strings.Contains(lowered, "does not exist") {
		return true
	}
	return NormalizeEmail(email) == constants.PlaceholderEmail
}
