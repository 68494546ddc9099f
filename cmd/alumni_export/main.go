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

// Command alumni_export writes the reconciled alumni directory as CSV on behalf of a member.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	alumniprovider "github.com/kappakonnect/alumni-service/internal/alumni/provider"
	"github.com/kappakonnect/alumni-service/internal/system/config"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
	syscontext "github.com/kappakonnect/alumni-service/internal/system/context"
	"github.com/kappakonnect/alumni-service/internal/system/log"
	"github.com/kappakonnect/alumni-service/internal/system/metrics"
)

func main() {
	cdsHome := flag.String("cdsHome", "", "Path to the alumni service home directory")
	userID := flag.String("user", "", "Member id (UUID) the export runs as")
	out := flag.String("out", "", "Output file, stdout when empty")
	flag.Parse()

	if err := run(*cdsHome, *userID, *out); err != nil {
		fmt.Fprintf(os.Stderr, "alumni_export: %v\n", err)
		os.Exit(1)
	}
}

func run(home, userID, out string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return errors.Errorf("-user must be a UUID, got %q", userID)
	}
	if home == "" {
		dir, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "resolve working directory")
		}
		home = dir
	}

	if _, err := config.LoadEnvFiles(home); err != nil {
		return errors.Wrap(err, "load env files")
	}
	cfg, err := config.LoadConfig(home, constants.DeploymentConfigFile)
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	if err := config.InitializeRuntime(home, cfg); err != nil {
		return errors.Wrap(err, "initialize runtime")
	}
	if err := log.InitWithWriter(cfg.Log.LogLevel, os.Stderr); err != nil {
		return errors.Wrap(err, "initialize logger")
	}

	alumniMetrics, err := metrics.NewAlumniMetrics(prometheus.NewRegistry())
	if err != nil {
		return errors.Wrap(err, "create metrics")
	}
	svc, err := alumniprovider.NewAlumniProvider(cfg.DataSource, alumniMetrics).GetAlumniService()
	if err != nil {
		return errors.Wrap(err, "build alumni service")
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "create output file")
		}
		defer f.Close()
		w = f
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = syscontext.WithTraceID(ctx, syscontext.GenerateTraceID())

	count, err := svc.ExportAlumniCSV(ctx, &model.Identity{ID: userID}, w)
	if err != nil {
		return err
	}
	log.GetLogger().WithContext(ctx).Info("Exported alumni directory", log.Int("records", count))
	return nil
}
