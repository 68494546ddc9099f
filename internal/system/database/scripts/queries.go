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

var ListAlumni = map[string]string{
	"postgres": `SELECT id::text AS id, full_name, email, industry, graduation_year, crossing_year, chapter,
       line_order, line_label, current_company, current_position, location, linkedin_url,
       avatar_url, user_id::text AS user_id
       FROM alumni ORDER BY graduation_year DESC`,
}

var GetAlumniByID = map[string]string{
	"postgres": `SELECT id::text AS id, full_name, email, industry, graduation_year, crossing_year, chapter,
       line_order, line_label, current_company, current_position, location, linkedin_url,
       avatar_url, user_id::text AS user_id
       FROM alumni WHERE id::text = $1 LIMIT 1`,
}

var ListFeaturedAlumniIDs = map[string]string{
	"postgres": `SELECT id::text AS id FROM alumni WHERE is_featured = true`,
}

var ListMemberProfiles = map[string]string{
	"postgres": `SELECT user_id::text AS user_id, email, crossing_year, chapter, line_order FROM profiles`,
}
