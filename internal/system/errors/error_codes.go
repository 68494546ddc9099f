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

package errors

const errorPrefix = "KK-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	FETCH_ALUMNI = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while fetching alumni.",
	}

	MAP_ROW = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Malformed row returned by the backing store.",
	}

	EXPORT_ALUMNI = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while exporting alumni.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid request.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	PERMISSION_DENIED = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Permission denied. Make sure you're logged in.",
		Description: "The alumni directory rejected the request for the current session.",
	}

	ALUMNI_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Alumni not found.",
		Description: "No alumni record found for the given id.",
	}

	INVALID_ALUMNI_ID = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Invalid alumni id.",
		Description: "Alumni ids must be UUIDs.",
	}

	RATE_LIMITED = ErrorMessage{
		Code:        errorPrefix + "11006",
		Message:     "Rate limit exceeded",
		Description: "Rate limit exceeded. Too many requests from this IP.",
	}

	REQUEST_BLOCKED = ErrorMessage{
		Code:        errorPrefix + "11007",
		Message:     "Forbidden",
		Description: "Malicious request detected and blocked.",
	}
)
