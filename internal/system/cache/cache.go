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

// Package cache provides the in-memory TTL store behind request throttling.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache with fixed-window counters.
type Cache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// NewCache creates a cache whose entries live for defaultTTL. Expired entries are
// swept every cleanupInterval; zero disables the sweeper.
func NewCache(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
		ttl:   defaultTTL,
	}
}

// Get retrieves an item from the cache.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set adds an item to the cache with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes an item from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Hit counts one event against key and returns the count within the current window.
// The window opens on the first hit and lasts for the cache TTL.
func (c *Cache) Hit(key string) int {
	if err := c.store.Add(key, 1, c.ttl); err == nil {
		return 1
	}
	n, err := c.store.IncrementInt(key, 1)
	if err != nil {
		// The window closed between Add and IncrementInt.
		c.store.Set(key, 1, c.ttl)
		return 1
	}
	return n
}

// ItemCount returns the number of live and not yet swept entries.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
