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
	"net/url"
	"strings"

	"github.com/kappakonnect/alumni-service/internal/system/constants"
)

// AvatarURL prefers the stored avatar and otherwise falls back to an initials
// avatar generated from the name. Empty when neither is available.
func AvatarURL(avatarURL *string, fullName string) string {
	if avatarURL != nil && strings.TrimSpace(*avatarURL) != "" {
		return *avatarURL
	}
	name := strings.TrimSpace(fullName)
	if name == "" {
		return ""
	}
	query := url.Values{}
	query.Set("name", name)
	query.Set("size", "200")
	return constants.UIAvatarsBaseURL + "?" + query.Encode()
}
