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

package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column values arrive as whatever the driver decoded: lib/pq yields string, []byte,
// int64, float64 and bool; the mongo driver yields string, int32, int64 and float64.
// The coercers below map those onto the nullable Go types used by the models and
// reject anything else so a malformed row fails at the boundary.

// CoerceString converts a stored value to a nullable string.
func CoerceString(value interface{}) (*string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return &v, nil
	case []byte:
		s := string(v)
		return &s, nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to string", value)
	}
}

// CoerceInt converts a stored value to a nullable int. Integral floats are accepted,
// fractional ones are not.
func CoerceInt(value interface{}) (*int, error) {
	var i int
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		i = v
	case int32:
		i = int(v)
	case int64:
		i = int(v)
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("cannot coerce decimal %v to integer without precision loss", v)
		}
		i = int(v)
	case []byte:
		return CoerceInt(string(v))
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("cannot coerce string '%s' to integer", v)
		}
		i = parsed
	default:
		return nil, fmt.Errorf("cannot coerce %T to integer", value)
	}
	return &i, nil
}
