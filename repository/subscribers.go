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

package repository

import (
	"context"

	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/types"
	"github.com/uptrace/bun"
)

// subscriberKey is the natural key of a notification subscription.
func subscriberKey(brandSlug, phoneSlug, email string) types.Predicate {
	return types.And(
		types.Eq("brand_slug", brandSlug),
		types.Eq("phone_slug", phoneSlug),
		types.Eq("email", email),
	)
}

// PriceSubscriberRepository stores price-drop subscriptions keyed by the
// (brand slug, phone slug, email) triple. Subscribing twice is a no-op.
type PriceSubscriberRepository struct {
	Repository[models.PriceSubscriber]
}

func NewPriceSubscriberRepository(db *bun.DB) *PriceSubscriberRepository {
	return &PriceSubscriberRepository{
		Repository: NewRepository[models.PriceSubscriber, *models.PriceSubscriber](db),
	}
}

func (r *PriceSubscriberRepository) Subscribe(ctx context.Context, sub *models.PriceSubscriber) (*models.PriceSubscriber, error) {
	return r.InsertIfAbsent(ctx, sub, subscriberKey(sub.BrandSlug, sub.PhoneSlug, sub.Email))
}

func (r *PriceSubscriberRepository) ForPhone(ctx context.Context, brandSlug, phoneSlug string) ([]*models.PriceSubscriber, error) {
	return r.FindAll(ctx, nil,
		types.Eq("brand_slug", brandSlug),
		types.Eq("phone_slug", phoneSlug),
	)
}

// StockSubscriberRepository stores back-in-stock subscriptions with the
// same triple key.
type StockSubscriberRepository struct {
	Repository[models.StockSubscriber]
}

func NewStockSubscriberRepository(db *bun.DB) *StockSubscriberRepository {
	return &StockSubscriberRepository{
		Repository: NewRepository[models.StockSubscriber, *models.StockSubscriber](db),
	}
}

func (r *StockSubscriberRepository) Subscribe(ctx context.Context, sub *models.StockSubscriber) (*models.StockSubscriber, error) {
	return r.InsertIfAbsent(ctx, sub, subscriberKey(sub.BrandSlug, sub.PhoneSlug, sub.Email))
}

func (r *StockSubscriberRepository) ForPhone(ctx context.Context, brandSlug, phoneSlug string) ([]*models.StockSubscriber, error) {
	return r.FindAll(ctx, nil,
		types.Eq("brand_slug", brandSlug),
		types.Eq("phone_slug", phoneSlug),
	)
}
