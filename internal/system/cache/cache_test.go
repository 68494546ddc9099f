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

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := NewCache(time.Minute, 0)

	c.Set("k", "v")
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	c.Delete("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCache_HitCountsWithinWindow(t *testing.T) {
	c := NewCache(time.Minute, 0)

	assert.Equal(t, 1, c.Hit("10.0.0.1"))
	assert.Equal(t, 2, c.Hit("10.0.0.1"))
	assert.Equal(t, 3, c.Hit("10.0.0.1"))
	assert.Equal(t, 1, c.Hit("10.0.0.2"))
	assert.Equal(t, 2, c.ItemCount())
}

func TestCache_HitResetsAfterWindow(t *testing.T) {
	c := NewCache(20*time.Millisecond, 0)

	c.Hit("ip")
	c.Hit("ip")
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, c.Hit("ip"))
}
