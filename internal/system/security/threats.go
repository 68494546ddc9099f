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

package security

import (
	"net/url"
	"regexp"
	"strings"
)

// Block reasons, also used as metric labels.
const (
	ReasonRateLimited      = "rate_limited"
	ReasonSensitiveFile    = "sensitive_file"
	ReasonPathTraversal    = "path_traversal"
	ReasonSQLInjection     = "sql_injection"
	ReasonXSS              = "xss"
	ReasonCommandInjection = "command_injection"
)

var (
	sqlInjectionPatterns = compile(
		`(?i)('|%27)\s*or\s*1\s*=\s*1`,
		`(--|#|/\*)`,
		`(?i)\bunion\b.*\bselect\b`,
		`(?i)\bselect\b.*\bfrom\b`,
		`(?i)\binsert\b.*\binto\b`,
		`(?i)\bdelete\b.*\bfrom\b`,
		`(?i)\bdrop\b.*\btable\b`,
		`(?i)\bexec\b.*\(`,
	)
	xssPatterns = compile(
		`(?i)<script.*?>.*?</script>`,
		`(?i)<script`,
		`(?i)javascript:`,
		`(?i)on\w+\s*=`,
		`(?i)<iframe`,
		`(?i)<object`,
		`(?i)<embed`,
		`(?i)alert\s*\(`,
		`(?i)eval\s*\(`,
		`(?i)document\.cookie`,
		`(?i)document\.write`,
	)
	commandInjectionPatterns = compile(
		"[;&|`]",
		`(?i)\b(cat|ls|pwd|whoami|nc|netcat|curl|wget)\b`,
		`\$\{`,
		`\$\(`,
	)
	pathTraversalPatterns = compile(
		`\.\./`,
		`\.\.\\`,
		`(?i)\.\.%2f`,
		`(?i)\.\.%5c`,
	)
	sensitiveFilePatterns = compile(
		`(?i)\.env$`,
		`(?i)\.env\.`,
		`(?i)\.git/`,
		`(?i)config\.json$`,
		`(?i)package\.json$`,
		`(?i)package-lock\.json$`,
		`(?i)yarn\.lock$`,
		`(?i)\.sql$`,
		`(?i)\.log$`,
	)
)

// queryThreats are checked in order; the first match names the block reason.
var queryThreats = []struct {
	reason   string
	patterns []*regexp.Regexp
}{
	{ReasonSQLInjection, sqlInjectionPatterns},
	{ReasonXSS, xssPatterns},
	{ReasonCommandInjection, commandInjectionPatterns},
}

func compile(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(expr))
	}
	return patterns
}

// matchesAny tests value both as received and decoded with unescape.
func matchesAny(value string, unescape func(string) (string, error), patterns []*regexp.Regexp) bool {
	candidates := []string{value}
	if decoded, err := unescape(value); err == nil && decoded != value {
		candidates = append(candidates, decoded)
	}
	for _, candidate := range candidates {
		for _, p := range patterns {
			if p.MatchString(candidate) {
				return true
			}
		}
	}
	return false
}

// IsSensitiveFile reports whether path probes for configuration or source files.
func IsSensitiveFile(path string) bool {
	return matchesAny(path, url.PathUnescape, sensitiveFilePatterns)
}

// IsPathTraversal reports whether path tries to escape the served tree.
func IsPathTraversal(path string) bool {
	return matchesAny(path, url.PathUnescape, pathTraversalPatterns)
}

// DetectQueryThreat inspects every parameter name and value of a raw query string.
// Parameters are checked one at a time so the separators between them never match.
func DetectQueryThreat(rawQuery string) (string, bool) {
	if rawQuery == "" {
		return "", false
	}
	for _, param := range strings.Split(rawQuery, "&") {
		if param == "" {
			continue
		}
		key, value, _ := strings.Cut(param, "=")
		for _, threat := range queryThreats {
			if matchesAny(key, url.QueryUnescape, threat.patterns) || matchesAny(value, url.QueryUnescape, threat.patterns) {
				return threat.reason, true
			}
		}
	}
	return "", false
}

// isAttendanceCheckIn matches the QR check-in link /attendance?event=<id>&checkin=<flag>.
func isAttendanceCheckIn(path string, query url.Values) bool {
	if path != "/attendance" || !query.Has("event") || !query.Has("checkin") {
		return false
	}
	for key := range query {
		if key != "event" && key != "checkin" {
			return false
		}
	}
	return true
}
