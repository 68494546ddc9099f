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

package config

import (
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
	"gopkg.in/yaml.v2"
)

// LoadEnvFiles loads every *.env file under <home>/config into the process environment.
// Variables already set in the environment win.
func LoadEnvFiles(home string) ([]string, error) {
	envFiles, err := filepath.Glob(filepath.Join(home, "config", "*.env"))
	if err != nil {
		return nil, err
	}
	if len(envFiles) == 0 {
		return nil, nil
	}
	return envFiles, godotenv.Load(envFiles...)
}

// LoadConfig reads the deployment file, expands ${VAR} references and applies defaults.
func LoadConfig(home, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(home, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Type == "" {
		cfg.DataSource.Type = constants.DataSourcePostgres
	}
	if cfg.DataSource.SSLMode == "" {
		cfg.DataSource.SSLMode = "disable"
	}
	if cfg.Log.LogLevel == "" {
		cfg.Log.LogLevel = "INFO"
	}
	if cfg.Security.RateLimit.MaxRequests <= 0 {
		cfg.Security.RateLimit.MaxRequests = constants.DefaultRateLimitMaxRequests
	}
}

// QueryTimeoutDuration returns the configured per-query timeout, falling back to the default when unset or invalid.
func (d DataSourceConfig) QueryTimeoutDuration() time.Duration {
	if d.QueryTimeout == "" {
		return constants.DefaultQueryTimeout
	}
	timeout, err := time.ParseDuration(d.QueryTimeout)
	if err != nil || timeout <= 0 {
		return constants.DefaultQueryTimeout
	}
	return timeout
}

// WindowDuration returns the rate limit window, falling back to the default when unset or invalid.
func (r RateLimitConfig) WindowDuration() time.Duration {
	if r.Window == "" {
		return constants.DefaultRateLimitWindow
	}
	window, err := time.ParseDuration(r.Window)
	if err != nil || window <= 0 {
		return constants.DefaultRateLimitWindow
	}
	return window
}
