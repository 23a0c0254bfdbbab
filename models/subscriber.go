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

import "github.com/uptrace/bun"

// PriceSubscriber registers an email for price-change alerts on one phone.
// The (brand_slug, phone_slug, email) triple is unique; a repeated
// subscription keeps the original row.
type PriceSubscriber struct {
	bun.BaseModel `bun:"table:price_subscribers,alias:ps"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	BrandSlug string `bun:"brand_slug,notnull,unique:ux_price_subs_key" json:"brand_slug"`
	PhoneSlug string `bun:"phone_slug,notnull,unique:ux_price_subs_key" json:"phone_slug"`
	Email     string `bun:"email,notnull,unique:ux_price_subs_key" json:"email"`
}

func (s *PriceSubscriber) GetID() int64   { return s.ID }
func (s *PriceSubscriber) SetID(id int64) { s.ID = id }

// StockSubscriber registers an email for stock-change alerts on one phone.
type StockSubscriber struct {
	bun.BaseModel `bun:"table:stock_subscribers,alias:ss"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	BrandSlug string `bun:"brand_slug,notnull,unique:ux_stock_subs_key" json:"brand_slug"`
	PhoneSlug string `bun:"phone_slug,notnull,unique:ux_stock_subs_key" json:"phone_slug"`
	Email     string `bun:"email,notnull,unique:ux_stock_subs_key" json:"email"`
}

func (s *StockSubscriber) GetID() int64   { return s.ID }
func (s *StockSubscriber) SetID(id int64) { s.ID = id }
