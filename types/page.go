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

// DefaultPageSize is used when a page request does not specify a size.
const DefaultPageSize = 10

// PageRequest describes a 1-based paging window. Page numbers below 1
// normalize to 1; there is no upper clamp, a window past the end of the
// result set yields an empty page.
type PageRequest struct {
	page     int
	pageSize int
}

// NewPageRequest constructs a paging window.
func NewPageRequest(page, pageSize int) PageRequest {
	return PageRequest{page: page, pageSize: pageSize}
}

func (p PageRequest) GetPage() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

func (p PageRequest) GetPageSize() int {
	if p.pageSize < 1 {
		return DefaultPageSize
	}
	return p.pageSize
}

func (p PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// Page holds one slice of a result set along with paging metadata.
type Page[T any] struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	Items      []*T `json:"items"`
}

// NewPage builds a Page from a normalized request, a total match count, and
// the slice of rows for the window. TotalPages is ceil(total/pageSize).
func NewPage[T any](req PageRequest, total int, items []*T) *Page[T] {
	if items == nil {
		items = make([]*T, 0)
	}
	size := req.GetPageSize()
	return &Page[T]{
		Page:       req.GetPage(),
		PageSize:   size,
		TotalItems: total,
		TotalPages: (total + size - 1) / size,
		Items:      items,
	}
}
