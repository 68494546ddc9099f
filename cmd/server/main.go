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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	alumniprovider "github.com/kappakonnect/alumni-service/internal/alumni/provider"
	"github.com/kappakonnect/alumni-service/internal/system/authn"
	"github.com/kappakonnect/alumni-service/internal/system/config"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
	syscontext "github.com/kappakonnect/alumni-service/internal/system/context"
	dbprovider "github.com/kappakonnect/alumni-service/internal/system/database/provider"
	"github.com/kappakonnect/alumni-service/internal/system/database/scripts"
	"github.com/kappakonnect/alumni-service/internal/system/log"
	"github.com/kappakonnect/alumni-service/internal/system/managers"
	"github.com/kappakonnect/alumni-service/internal/system/metrics"
	"github.com/kappakonnect/alumni-service/internal/system/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cdsHome := flag.String("cdsHome", "", "Path to the alumni service home directory")
	initSchema := flag.Bool("initSchema", false, "Create the alumni tables before serving (postgres only)")
	flag.Parse()

	home := resolveHome(*cdsHome)

	envFiles, err := config.LoadEnvFiles(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load env files: %v\n", err)
	}

	cfg, err := config.LoadConfig(home, constants.DeploymentConfigFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitializeRuntime(home, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize runtime: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Log.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()
	logger.Info("Loaded configuration", log.String("home", home), log.Int("env_files", len(envFiles)))

	alumniMetrics, err := metrics.Default()
	if err != nil {
		logger.Fatal("Failed to register metrics", log.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *initSchema {
		if err := applySchema(ctx, cfg.DataSource); err != nil {
			logger.Fatal("Failed to initialize the alumni schema", log.Error(err))
		}
	}

	provider := alumniprovider.NewAlumniProvider(cfg.DataSource, alumniMetrics)
	mux, err := initMultiplexer(provider)
	if err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	authenticator := authn.NewAuthenticator(cfg.Auth)
	firewall := security.NewFirewall(cfg.Security, alumniMetrics)
	handler := syscontext.TraceMiddleware(
		firewall.Middleware(
			enableCORS(cfg.Auth.CORSAllowedOrigins)(
				authenticator.Middleware(mux))))

	serverAddr := fmt.Sprintf("%s:%d", cfg.Addr.Host, cfg.Addr.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Alumni service started", log.String("address", serverAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to serve requests", log.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down alumni service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", log.Error(err))
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(provider alumniprovider.AlumniProviderInterface) (*http.ServeMux, error) {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux, provider)
	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		return nil, err
	}
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux, nil
}

func applySchema(ctx context.Context, dataSource config.DataSourceConfig) error {
	if dataSource.Type != constants.DataSourcePostgres {
		log.GetLogger().Warn("Schema initialization is only supported for postgres",
			log.String("type", dataSource.Type))
		return nil
	}
	dbClient, err := dbprovider.NewDBProvider().GetDBClient()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, dataSource.QueryTimeoutDuration())
	defer cancel()
	return dbClient.InitSchema(ctx, scripts.AlumniSchema[constants.DataSourcePostgres])
}

// enableCORS echoes the request origin when it is in the allow list. A "*" entry allows any origin.
func enableCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowAny := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAny = true
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; origin != "" && (ok || allowAny) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, "+constants.TraceIDHeader)
				w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Disposition")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveHome falls back to the working directory when no home is given.
func resolveHome(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
