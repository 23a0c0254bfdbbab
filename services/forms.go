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

package services

import (
	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/types"
)

// PhonesFilterForm narrows the catalog listing. Empty strings and nil
// bounds leave their dimension unconstrained.
type PhonesFilterForm struct {
	BrandName string `json:"brand_name"`
	PhoneName string `json:"phone_name"`
	PriceMin  *int   `json:"price_min"`
	PriceMax  *int   `json:"price_max"`
	InStock   bool   `json:"in_stock"`
	OrderBy   string `json:"order_by"`
}

// predicates translates the form into repository criteria. Customer views
// pass visibleOnly=true so hidden phones never leak into the listing.
func (f PhonesFilterForm) predicates(visibleOnly bool) []types.Predicate {
	var preds []types.Predicate
	if visibleOnly {
		preds = append(preds, types.Flag("hidden", false))
	}
	if f.BrandName != "" {
		preds = append(preds, types.Contains("brand_slug", f.BrandName))
	}
	if f.PhoneName != "" {
		preds = append(preds, types.Contains("phone_name", f.PhoneName))
	}
	if f.PriceMin != nil {
		preds = append(preds, types.Gte("price", *f.PriceMin))
	}
	if f.PriceMax != nil {
		preds = append(preds, types.Lte("price", *f.PriceMax))
	}
	if f.InStock {
		preds = append(preds, types.Gte("stock", 1))
	}
	return preds
}

// order resolves the form's sort key; unknown names fall back to phone name.
func (f PhonesFilterForm) order() types.Order {
	return types.ParsePhoneSortKey(f.OrderBy).Order()
}

// CommentForm posts or replaces a customer's review of one phone.
type CommentForm struct {
	UserEmail string `json:"user_email"`
	PhoneSlug string `json:"phone_slug"`
	Rating    *int   `json:"rating"`
	Body      string `json:"body"`
}

// PriceSubscriberForm subscribes an email address to price drops.
type PriceSubscriberForm struct {
	BrandSlug string `json:"brand_slug"`
	PhoneSlug string `json:"phone_slug"`
	Email     string `json:"email"`
}

// StockSubscriberForm subscribes an email address to restocks.
type StockSubscriberForm struct {
	BrandSlug string `json:"brand_slug"`
	PhoneSlug string `json:"phone_slug"`
	Email     string `json:"email"`
}

// PhoneSpecForm is the admin payload for importing or refreshing a phone:
// shop-owned fields plus the slug used against the specifications API.
type PhoneSpecForm struct {
	PhoneSlug string `json:"phone_slug"`
	BrandSlug string `json:"brand_slug"`
	Price     *int   `json:"price"`
	Stock     *int   `json:"stock"`
	Hidden    bool   `json:"hidden"`
}

// PhonesPage is one window of the filtered catalog.
type PhonesPage struct {
	Filter PhonesFilterForm         `json:"filter"`
	Result *types.Page[models.Phone] `json:"result"`
}

// CommentsPage is one window of a phone's reviews, users attached.
type CommentsPage struct {
	PhoneSlug string                     `json:"phone_slug"`
	Result    *types.Page[models.Comment] `json:"result"`
}

// PhoneDetails is a catalog phone together with its average review rating,
// rounded to one decimal. AverageRating is nil when nobody rated it yet.
type PhoneDetails struct {
	*models.Phone
	AverageRating *float64 `json:"average_rating,omitempty"`
}
