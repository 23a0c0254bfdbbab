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

// BrandRepository is the typed facade over brands, keyed by slug.
type BrandRepository struct {
	Repository[models.Brand]
}

func NewBrandRepository(db *bun.DB) *BrandRepository {
	return &BrandRepository{Repository: NewRepository[models.Brand, *models.Brand](db)}
}

func (r *BrandRepository) GetBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	return r.FindOne(ctx, types.Eq("slug", slug))
}

// InsertIfNotExists keeps the first brand registered under a slug; a later
// candidate with the same slug is discarded in favor of the existing row.
func (r *BrandRepository) InsertIfNotExists(ctx context.Context, brand *models.Brand) (*models.Brand, error) {
	return r.InsertIfAbsent(ctx, brand, types.Eq("slug", brand.Slug))
}

// UpdateOrInsert upserts the brand keyed by its slug.
func (r *BrandRepository) UpdateOrInsert(ctx context.Context, brand *models.Brand) error {
	return r.InsertOrUpdate(ctx, brand, types.Eq("slug", brand.Slug))
}

// List returns every brand in name order.
func (r *BrandRepository) List(ctx context.Context) ([]*models.Brand, error) {
	order := types.Asc("name")
	return r.FindAll(ctx, &order)
}
