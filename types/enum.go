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

// Common illegal/default values used by enums.
const (
	IllegalValue = -1
	IllegalName  = "unknown"
)

// BaseEnum represents a basic enum contract used by domain types.
type BaseEnum interface {
	IsValid() bool
	Number() int
	Name() string
	Column() string
}

// PhoneSortKey selects the ordering column for phone listings.
type PhoneSortKey int

const (
	SortByName PhoneSortKey = iota
	SortByBrand
	SortByPrice
	SortByStock
)

var phoneSortKeys = map[PhoneSortKey]struct {
	name   string
	column string
}{
	SortByName:  {"PhoneName", "phone_name"},
	SortByBrand: {"BrandSlug", "brand_slug"},
	SortByPrice: {"Price", "price"},
	SortByStock: {"Stock", "stock"},
}

// ParsePhoneSortKey maps a user-supplied sort name to a key. Unrecognized or
// empty names fall back to sorting by phone name.
func ParsePhoneSortKey(name string) PhoneSortKey {
	for key, meta := range phoneSortKeys {
		if meta.name == name {
			return key
		}
	}
	return SortByName
}

func (k PhoneSortKey) IsValid() bool {
	_, ok := phoneSortKeys[k]
	return ok
}

func (k PhoneSortKey) Number() int {
	if !k.IsValid() {
		return IllegalValue
	}
	return int(k)
}

func (k PhoneSortKey) Name() string {
	if meta, ok := phoneSortKeys[k]; ok {
		return meta.name
	}
	return IllegalName
}

// Column returns the database column the key sorts on.
func (k PhoneSortKey) Column() string {
	if meta, ok := phoneSortKeys[k]; ok {
		return meta.column
	}
	return phoneSortKeys[SortByName].column
}

// Order returns the ascending order term for the key.
func (k PhoneSortKey) Order() Order {
	return Asc(k.Column())
}
