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

package constants

import "time"

const ApiBasePath = "/api/v1"
const AlumniApiPath = "/alumni"
const AlumniExportPath = "/alumni/export"

const DeploymentConfigFile = "/repository/conf/deployment.yaml"

type contextKey string

const (
	TraceIDContextKey  contextKey = "trace_id"
	IdentityContextKey contextKey = "identity"
)

const TraceIDHeader = "X-Trace-Id"

// Datasource types
const (
	DataSourcePostgres = "postgres"
	DataSourceMongoDB  = "mongodb"
)

// Backing collections / tables
const (
	AlumniTable   = "alumni"
	ProfilesTable = "profiles"
)

const DefaultQueryTimeout = 10 * time.Second

// Rate limiting defaults
const (
	DefaultRateLimitWindow      = 60 * time.Second
	DefaultRateLimitMaxRequests = 1000
)

// Placeholder rows mark skipped line positions and are never surfaced.
const (
	PlaceholderName  = "dne"
	PlaceholderEmail = "doesnotexist@example.com"
)

const UIAvatarsBaseURL = "https://ui-avatars.com/api"

const DefaultChapterAbbreviation = "Xi"

// Line-position collapse uses this bucket when a record has no line label.
const UnlabeledLineBucket = "OTHER"

const PermissionDeniedMessage = "Permission denied. Make sure you're logged in."
