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

import "sync"

// Runtime holds the runtime configuration for the alumni service.
type Runtime struct {
	Home   string `yaml:"home"`
	Config Config `yaml:"config"`
}

var (
	runtimeConfig *Runtime
	runtimeMu     sync.RWMutex
	once          sync.Once
)

// InitializeRuntime initializes the Runtime configuration once per process.
func InitializeRuntime(home string, config *Config) error {

	once.Do(func() {
		runtimeMu.Lock()
		defer runtimeMu.Unlock()
		runtimeConfig = &Runtime{
			Home:   home,
			Config: *config,
		}
	})

	return nil
}

// GetRuntime returns the Runtime configuration.
func GetRuntime() *Runtime {

	runtimeMu.RLock()
	defer runtimeMu.RUnlock()
	if runtimeConfig == nil {
		panic("Runtime is not initialized")
	}
	return runtimeConfig
}

// OverrideRuntime replaces the runtime configuration. Intended for tests.
func OverrideRuntime(conf Config) {
	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	runtimeConfig = &Runtime{
		Config: conf,
	}
}
