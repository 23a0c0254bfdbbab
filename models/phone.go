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

package models

import (
	"github.com/mlevkov/phoneshop/types"
	"github.com/uptrace/bun"
)

// Phone is a catalog item imported from the specifications API and enriched
// by the back office. Price and stock are nullable until set by an admin.
// Hidden phones stay in the store but never reach customer listings.
type Phone struct {
	bun.BaseModel `bun:"table:phones,alias:p"`

	ID             int64             `bun:"id,pk,autoincrement" json:"id"`
	BrandSlug      string            `bun:"brand_slug,notnull" json:"brand_slug"`
	PhoneSlug      string            `bun:"phone_slug,notnull,unique" json:"phone_slug"`
	PhoneName      string            `bun:"phone_name,notnull" json:"phone_name"`
	Price          *int              `bun:"price" json:"price"`
	Stock          *int              `bun:"stock" json:"stock"`
	Hidden         bool              `bun:"hidden,notnull,default:false" json:"hidden"`
	Os             string            `bun:"os" json:"os"`
	Dimension      string            `bun:"dimension" json:"dimension"`
	Storage        string            `bun:"storage" json:"storage"`
	ReleaseDate    string            `bun:"release_date" json:"release_date"`
	Thumbnail      string            `bun:"thumbnail" json:"thumbnail"`
	Images         types.JSONStrings `bun:"images,type:text" json:"images"`
	Specifications types.JSONObject  `bun:"specifications,type:text" json:"specifications"`
}

func (p *Phone) GetID() int64   { return p.ID }
func (p *Phone) SetID(id int64) { p.ID = id }

// InStock reports whether at least one unit is available.
func (p *Phone) InStock() bool {
	return p.Stock != nil && *p.Stock >= 1
}
