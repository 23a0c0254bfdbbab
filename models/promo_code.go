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
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// PromoCode grants a percentage discount on one phone for a limited number
// of redemptions. Key is the customer-facing coupon string.
type PromoCode struct {
	bun.BaseModel `bun:"table:promo_codes,alias:pc"`

	ID        int64           `bun:"id,pk,autoincrement" json:"id"`
	PhoneSlug string          `bun:"phone_slug,notnull" json:"phone_slug"`
	Key       string          `bun:"promo_key,notnull,unique" json:"key"`
	Amount    int             `bun:"amount,notnull" json:"amount"`
	Discount  decimal.Decimal `bun:"discount,notnull,type:numeric" json:"discount"`
}

func (p *PromoCode) GetID() int64   { return p.ID }
func (p *PromoCode) SetID(id int64) { p.ID = id }

// Apply returns price reduced by the discount percentage, rounded to whole
// currency units.
func (p *PromoCode) Apply(price int) int {
	full := decimal.NewFromInt(int64(price))
	factor := decimal.NewFromInt(100).Sub(p.Discount).Div(decimal.NewFromInt(100))
	return int(full.Mul(factor).Round(0).IntPart())
}
