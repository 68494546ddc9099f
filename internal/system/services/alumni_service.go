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

package services

import (
	"fmt"
	"net/http"

	"github.com/kappakonnect/alumni-service/internal/alumni/handler"
	"github.com/kappakonnect/alumni-service/internal/alumni/service"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
)

// AlumniService registers the alumni directory endpoints.
type AlumniService struct {
	handler *handler.AlumniHandler
}

// NewAlumniService creates a new AlumniService instance and registers its routes.
func NewAlumniService(mux *http.ServeMux, apiBasePath string, alumniService service.AlumniServiceInterface) *AlumniService {
	instance := &AlumniService{
		handler: handler.NewAlumniHandler(alumniService),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *AlumniService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s%s", apiBasePath, constants.AlumniApiPath), s.handler.GetAlumniList)
	mux.HandleFunc(fmt.Sprintf("GET %s%s", apiBasePath, constants.AlumniExportPath), s.handler.ExportAlumni)
	mux.HandleFunc(fmt.Sprintf("GET %s%s/{id}", apiBasePath, constants.AlumniApiPath), s.handler.GetAlumni)
}
