/*
 * Copyright 2025 the phoneshop authors.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestNormalization(t *testing.T) {
	assert.Equal(t, 1, NewPageRequest(0, 10).GetPage())
	assert.Equal(t, 1, NewPageRequest(-3, 10).GetPage())
	assert.Equal(t, 7, NewPageRequest(7, 10).GetPage())

	assert.Equal(t, DefaultPageSize, NewPageRequest(1, 0).GetPageSize())
	assert.Equal(t, DefaultPageSize, NewPageRequest(1, -1).GetPageSize())
	assert.Equal(t, 25, NewPageRequest(1, 25).GetPageSize())

	assert.Equal(t, 0, NewPageRequest(1, 10).GetOffset())
	assert.Equal(t, 20, NewPageRequest(3, 10).GetOffset())
	assert.Equal(t, 0, NewPageRequest(-1, 10).GetOffset())
}

func TestNewPageTotals(t *testing.T) {
	type row struct{ V int }

	page := NewPage[row](NewPageRequest(1, 10), 25, nil)
	assert.Equal(t, 25, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	exact := NewPage[row](NewPageRequest(2, 10), 30, nil)
	assert.Equal(t, 3, exact.TotalPages)

	empty := NewPage[row](NewPageRequest(1, 10), 0, nil)
	assert.Equal(t, 0, empty.TotalPages)
}
