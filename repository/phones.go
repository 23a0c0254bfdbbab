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

// PhoneRepository is the typed facade over the phone catalog. The natural
// key is the phone slug; admin lookups see hidden phones, customer lookups
// do not.
type PhoneRepository struct {
	Repository[models.Phone]
}

func NewPhoneRepository(db *bun.DB) *PhoneRepository {
	return &PhoneRepository{Repository: NewRepository[models.Phone, *models.Phone](db)}
}

// GetBySlug returns the phone with the given slug, hidden or not. Absence
// is (nil, nil).
func (r *PhoneRepository) GetBySlug(ctx context.Context, slug string) (*models.Phone, error) {
	return r.FindOne(ctx, types.Eq("phone_slug", slug))
}

// GetVisibleBySlug returns the phone with the given slug unless it is
// hidden from the catalog.
func (r *PhoneRepository) GetVisibleBySlug(ctx context.Context, slug string) (*models.Phone, error) {
	return r.FindOne(ctx, types.Eq("phone_slug", slug), types.Flag("hidden", false))
}

// InsertOrUpdateBySlug upserts the phone keyed by its slug.
func (r *PhoneRepository) InsertOrUpdateBySlug(ctx context.Context, phone *models.Phone) error {
	return r.InsertOrUpdate(ctx, phone, types.Eq("phone_slug", phone.PhoneSlug))
}
