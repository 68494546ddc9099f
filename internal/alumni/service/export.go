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

package service

import (
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"strconv"

	"github.com/kappakonnect/alumni-service/internal/alumni/display"
	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	syscontext "github.com/kappakonnect/alumni-service/internal/system/context"
	customerrors "github.com/kappakonnect/alumni-service/internal/system/errors"
	"github.com/kappakonnect/alumni-service/internal/system/log"
)

// ExportColumns is the header row of the CSV export.
var ExportColumns = []string{
	"id", "full_name", "email", "industry", "graduation_year", "crossing_year", "crossing_display",
	"chapter", "line_order", "line_label", "current_company", "current_position", "location",
	"linkedin_url", "avatar_url",
}

// ExportAlumniCSV writes the reconciled directory to w and returns the number of records written.
func (s *AlumniService) ExportAlumniCSV(ctx context.Context, identity *model.Identity, w io.Writer) (int, error) {
	traceID := syscontext.GetTraceID(ctx)
	if isAnonymous(identity) {
		return 0, customerrors.NewClientErrorWithTraceID(customerrors.UN_AUTHORIZED, http.StatusUnauthorized, traceID)
	}

	alumni, err := s.GetAlumniList(ctx, identity)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ExportColumns); err != nil {
		return 0, customerrors.NewServerErrorWithTraceID(customerrors.EXPORT_ALUMNI, err, traceID)
	}
	for _, a := range alumni {
		if err := writer.Write(exportRow(a)); err != nil {
			return 0, customerrors.NewServerErrorWithTraceID(customerrors.EXPORT_ALUMNI, err, traceID)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, customerrors.NewServerErrorWithTraceID(customerrors.EXPORT_ALUMNI, err, traceID)
	}

	log.GetLogger().WithContext(ctx).Audit(log.AuditEvent{
		InitiatorID:   identity.ID,
		InitiatorType: log.InitiatorTypeMember,
		TargetType:    log.TargetTypeAlumni,
		ActionID:      log.ActionExportAlumni,
		TraceID:       traceID,
		Data:          map[string]int{"records": len(alumni)},
	})
	return len(alumni), nil
}

func exportRow(a model.CanonicalAlumni) []string {
	return []string{
		a.ID,
		a.FullName,
		str(a.Email),
		str(a.Industry),
		num(a.GraduationYear),
		num(a.CrossingYear),
		str(a.CrossingDisplay),
		str(a.Chapter),
		num(a.LineOrder),
		str(a.LineLabel),
		str(a.CurrentCompany),
		str(a.CurrentPosition),
		str(a.Location),
		str(a.LinkedInURL),
		display.AvatarURL(a.AvatarURL, a.FullName),
	}
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func num(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
