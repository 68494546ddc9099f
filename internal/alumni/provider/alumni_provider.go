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
	"context"
	"fmt"
	"sync"

	"github.com/kappakonnect/alumni-service/internal/alumni/service"
	"github.com/kappakonnect/alumni-service/internal/alumni/store"
	"github.com/kappakonnect/alumni-service/internal/system/config"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
	dbprovider "github.com/kappakonnect/alumni-service/internal/system/database/provider"
	customerrors "github.com/kappakonnect/alumni-service/internal/system/errors"
	"github.com/kappakonnect/alumni-service/internal/system/log"
	"github.com/kappakonnect/alumni-service/internal/system/metrics"
)

// AlumniProviderInterface defines the interface for the alumni provider.
type AlumniProviderInterface interface {
	GetAlumniStore() (store.AlumniStoreInterface, error)
	GetAlumniService() (service.AlumniServiceInterface, error)
}

// AlumniProvider builds the alumni store for the configured datasource once and
// hands out services over it.
type AlumniProvider struct {
	dataSource config.DataSourceConfig
	metrics    *metrics.AlumniMetrics

	once     sync.Once
	instance store.AlumniStoreInterface
	err      error
}

// NewAlumniProvider creates a new instance of AlumniProvider.
func NewAlumniProvider(dataSource config.DataSourceConfig, m *metrics.AlumniMetrics) *AlumniProvider {
	return &AlumniProvider{
		dataSource: dataSource,
		metrics:    m,
	}
}

// GetAlumniStore returns the store for the configured datasource type.
func (p *AlumniProvider) GetAlumniStore() (store.AlumniStoreInterface, error) {
	p.once.Do(func() {
		p.instance, p.err = p.newStore()
		if p.err != nil {
			p.err = customerrors.NewServerError(customerrors.DB_CLIENT_INIT, p.err)
		}
	})
	return p.instance, p.err
}

// GetAlumniService returns the alumni service instance.
func (p *AlumniProvider) GetAlumniService() (service.AlumniServiceInterface, error) {
	alumniStore, err := p.GetAlumniStore()
	if err != nil {
		return nil, err
	}
	return service.NewAlumniService(alumniStore, p.metrics), nil
}

func (p *AlumniProvider) newStore() (store.AlumniStoreInterface, error) {
	timeout := p.dataSource.QueryTimeoutDuration()
	logger := log.GetLogger()

	switch p.dataSource.Type {
	case constants.DataSourcePostgres, "":
		dbClient, err := dbprovider.NewDBProvider().GetDBClient()
		if err != nil {
			return nil, err
		}
		logger.Info("Using PostgreSQL alumni store", log.String("host", p.dataSource.Hostname))
		return store.NewPostgresAlumniStore(dbClient, timeout), nil

	case constants.DataSourceMongoDB:
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		mongoClient, err := store.ConnectMongo(ctx, p.dataSource.URI)
		if err != nil {
			return nil, err
		}
		logger.Info("Using MongoDB alumni store", log.String("database", p.dataSource.Name))
		return store.NewMongoAlumniStore(mongoClient.Database(p.dataSource.Name), timeout), nil

	default:
		return nil, fmt.Errorf("unsupported datasource type %q", p.dataSource.Type)
	}
}
