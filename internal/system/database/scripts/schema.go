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

package scripts

// AlumniSchema creates the tables read by the alumni directory. Row-level security
// policies are environment specific and are applied separately.
var AlumniSchema = map[string]string{
	"postgres": `
CREATE TABLE IF NOT EXISTS alumni (
    id               UUID PRIMARY KEY,
    full_name        TEXT NOT NULL,
    email            TEXT,
    industry         TEXT,
    graduation_year  INTEGER,
    crossing_year    INTEGER,
    chapter          TEXT,
    line_order       INTEGER,
    line_label       TEXT,
    current_company  TEXT,
    current_position TEXT,
    location         TEXT,
    linkedin_url     TEXT,
    avatar_url       TEXT,
    user_id          UUID,
    is_featured      BOOLEAN DEFAULT false
);

CREATE TABLE IF NOT EXISTS profiles (
    user_id       UUID PRIMARY KEY,
    email         TEXT,
    crossing_year INTEGER,
    chapter       TEXT,
    line_order    INTEGER
);

CREATE INDEX IF NOT EXISTS idx_alumni_graduation_year ON alumni (graduation_year DESC);`,
}
