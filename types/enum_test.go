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

func TestParsePhoneSortKey(t *testing.T) {
	assert.Equal(t, SortByName, ParsePhoneSortKey("PhoneName"))
	assert.Equal(t, SortByBrand, ParsePhoneSortKey("BrandSlug"))
	assert.Equal(t, SortByPrice, ParsePhoneSortKey("Price"))
	assert.Equal(t, SortByStock, ParsePhoneSortKey("Stock"))

	assert.Equal(t, SortByName, ParsePhoneSortKey(""))
	assert.Equal(t, SortByName, ParsePhoneSortKey("Rating"))
}

func TestPhoneSortKeyColumns(t *testing.T) {
	assert.Equal(t, "phone_name", SortByName.Column())
	assert.Equal(t, "brand_slug", SortByBrand.Column())
	assert.Equal(t, "price", SortByPrice.Column())
	assert.Equal(t, "stock", SortByStock.Column())

	invalid := PhoneSortKey(99)
	assert.False(t, invalid.IsValid())
	assert.Equal(t, IllegalValue, invalid.Number())
	assert.Equal(t, IllegalName, invalid.Name())
	assert.Equal(t, "phone_name", invalid.Column())

	order := SortByPrice.Order()
	assert.Equal(t, "price", order.Column)
	assert.False(t, order.Desc)
}
