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

package specsapi

// BrandSummary is one entry of the remote brand catalog.
type BrandSummary struct {
	BrandID     int    `json:"brand_id"`
	Name        string `json:"brand_name"`
	Slug        string `json:"brand_slug"`
	DeviceCount int    `json:"device_count"`
	Detail      string `json:"detail"`
}

// BrandsResponse is the envelope of GET /v2/brands.
type BrandsResponse struct {
	Status bool           `json:"status"`
	Data   []BrandSummary `json:"data"`
}

// PhoneSummary is one entry of a remote phone listing.
type PhoneSummary struct {
	Brand     string `json:"brand"`
	PhoneName string `json:"phone_name"`
	Slug      string `json:"slug"`
	Image     string `json:"image"`
	Detail    string `json:"detail"`
}

// PhonesPageData is the paged phone listing of one brand.
type PhonesPageData struct {
	Title       string         `json:"title"`
	CurrentPage int            `json:"current_page"`
	LastPage    int            `json:"last_page"`
	Phones      []PhoneSummary `json:"phones"`
}

// PhonesResponse is the envelope of GET /v2/brands/{slug}?page=N.
type PhonesResponse struct {
	Status bool           `json:"status"`
	Data   PhonesPageData `json:"data"`
}

// SpecItem is a single key with one or more values, e.g. "Resolution".
type SpecItem struct {
	Key string   `json:"key"`
	Val []string `json:"val"`
}

// SpecGroup is a titled group of specification items, e.g. "Display".
type SpecGroup struct {
	Title string     `json:"title"`
	Specs []SpecItem `json:"specs"`
}

// PhoneDetail carries the full specification sheet of one phone.
type PhoneDetail struct {
	Brand          string      `json:"brand"`
	PhoneName      string      `json:"phone_name"`
	Thumbnail      string      `json:"thumbnail"`
	PhoneImages    []string    `json:"phone_images"`
	ReleaseDate    string      `json:"release_date"`
	Dimension      string      `json:"dimension"`
	Os             string      `json:"os"`
	Storage        string      `json:"storage"`
	Specifications []SpecGroup `json:"specifications"`
}

// PhoneDetailResponse is the envelope of GET /v2/{phoneSlug}.
type PhoneDetailResponse struct {
	Status bool        `json:"status"`
	Data   PhoneDetail `json:"data"`
}

// ListingData is the unpaged phone listing shared by search, latest, and
// the two top charts.
type ListingData struct {
	Title  string         `json:"title"`
	Phones []PhoneSummary `json:"phones"`
}

// ListingResponse is the envelope of GET /v2/search, /v2/latest,
// /v2/top-by-interest, and /v2/top-by-fans.
type ListingResponse struct {
	Status bool        `json:"status"`
	Data   ListingData `json:"data"`
}
