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

package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/kappakonnect/alumni-service/internal/alumni/service"
	"github.com/kappakonnect/alumni-service/internal/system/authn"
	syscontext "github.com/kappakonnect/alumni-service/internal/system/context"
	"github.com/kappakonnect/alumni-service/internal/system/errors"
	"github.com/kappakonnect/alumni-service/internal/system/utils"
)

// AlumniHandler serves the alumni directory API.
type AlumniHandler struct {
	service service.AlumniServiceInterface
}

// NewAlumniHandler creates a handler over alumniService.
func NewAlumniHandler(alumniService service.AlumniServiceInterface) *AlumniHandler {
	return &AlumniHandler{
		service: alumniService,
	}
}

// GetAlumniList handles directory listing. ?featured=true restricts it to featured alumni.
func (h *AlumniHandler) GetAlumniList(w http.ResponseWriter, r *http.Request) {
	identity := authn.IdentityFromContext(r.Context())

	featured := false
	if raw := r.URL.Query().Get("featured"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest := errors.BAD_REQUEST
			badRequest.Description = "featured must be a boolean."
			utils.HandleError(w, errors.NewClientErrorWithTraceID(badRequest, http.StatusBadRequest,
				syscontext.GetTraceID(r.Context())))
			return
		}
		featured = parsed
	}

	list := h.service.GetAlumniList
	if featured {
		list = h.service.GetFeaturedAlumni
	}
	alumni, err := list(r.Context(), identity)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, alumni)
}

// GetAlumni handles retrieval of a single alumni record.
func (h *AlumniHandler) GetAlumni(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		utils.HandleError(w, errors.NewClientErrorWithTraceID(errors.INVALID_ALUMNI_ID, http.StatusBadRequest,
			syscontext.GetTraceID(r.Context())))
		return
	}

	alumni, err := h.service.GetAlumni(r.Context(), authn.IdentityFromContext(r.Context()), id)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, alumni)
}

// ExportAlumni streams the reconciled directory as a CSV attachment.
func (h *AlumniHandler) ExportAlumni(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if _, err := h.service.ExportAlumniCSV(r.Context(), authn.IdentityFromContext(r.Context()), &buf); err != nil {
		utils.HandleError(w, err)
		return
	}

	filename := "alumni-" + time.Now().UTC().Format("20060102") + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
