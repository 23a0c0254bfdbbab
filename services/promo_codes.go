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
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/repository"
	"github.com/mlevkov/phoneshop/types"
	"github.com/mlevkov/phoneshop/utils"
)

// PromoCodes manages discount coupons, keyed by the customer-facing code
// string.
type PromoCodes struct {
	codes  repository.Repository[models.PromoCode]
	logger *logrus.Logger
}

func NewPromoCodes(db *bun.DB) *PromoCodes {
	return &PromoCodes{
		codes:  repository.NewRepository[models.PromoCode, *models.PromoCode](db),
		logger: utils.NewLogger("PROMO"),
	}
}

// GetAll lists every promo code.
func (s *PromoCodes) GetAll(ctx context.Context) ([]*models.PromoCode, error) {
	return s.codes.FindAll(ctx, nil)
}

// GetByKey returns the promo code for the given key, or (nil, nil).
func (s *PromoCodes) GetByKey(ctx context.Context, key string) (*models.PromoCode, error) {
	return s.codes.FindOne(ctx, types.Eq("promo_key", key))
}

// AddOrUpdate upserts the promo code under its key. An empty key gets a
// generated UUID so freshly minted coupons are unguessable. The returned
// code carries the effective key.
func (s *PromoCodes) AddOrUpdate(ctx context.Context, phoneSlug, key string, amount, discount int) (*models.PromoCode, error) {
	if key == "" {
		key = uuid.NewString()
	}
	code := &models.PromoCode{
		PhoneSlug: phoneSlug,
		Key:       key,
		Amount:    amount,
		Discount:  decimal.NewFromInt(int64(discount)),
	}
	if err := s.codes.InsertOrUpdate(ctx, code, types.Eq("promo_key", key)); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"phone_slug": phoneSlug,
		"discount":   discount,
	}).Info("Promo code stored")
	return code, nil
}

// RemoveIfExists deletes the promo code under the key and reports whether
// one existed.
func (s *PromoCodes) RemoveIfExists(ctx context.Context, key string) (bool, error) {
	return s.codes.RemoveIfExists(ctx, types.Eq("promo_key", key))
}
