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

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kappakonnect/alumni-service/internal/system/config"
	customerrors "github.com/kappakonnect/alumni-service/internal/system/errors"
)

func TestAlumniProvider_UnsupportedDatasource(t *testing.T) {
	p := NewAlumniProvider(config.DataSourceConfig{Type: "sqlite"}, nil)

	_, err := p.GetAlumniService()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported datasource type "sqlite"`)
	var serverErr *customerrors.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, customerrors.DB_CLIENT_INIT.Code, serverErr.Code)

	_, again := p.GetAlumniStore()
	assert.Same(t, err, again, "the store is resolved once")
}
