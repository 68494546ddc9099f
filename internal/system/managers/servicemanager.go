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

package managers

import (
	"net/http"

	alumniprovider "github.com/kappakonnect/alumni-service/internal/alumni/provider"
	healthservice "github.com/kappakonnect/alumni-service/internal/health_check/service"
	"github.com/kappakonnect/alumni-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux            *http.ServeMux
	alumniProvider alumniprovider.AlumniProviderInterface
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, alumniProvider alumniprovider.AlumniProviderInterface) ServiceManagerInterface {
	return &ServiceManager{
		mux:            mux,
		alumniProvider: alumniProvider,
	}
}

// RegisterServices wires every HTTP service onto the mux.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {
	alumniStore, err := sm.alumniProvider.GetAlumniStore()
	if err != nil {
		return err
	}
	alumniService, err := sm.alumniProvider.GetAlumniService()
	if err != nil {
		return err
	}

	services.NewHealthService(sm.mux, healthservice.NewHealthCheckService(alumniStore))
	services.NewAlumniService(sm.mux, apiBasePath, alumniService)
	return nil
}
