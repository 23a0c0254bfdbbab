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

package phoneshop_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlevkov/phoneshop"
	"github.com/mlevkov/phoneshop/database"
	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/services"
	"github.com/mlevkov/phoneshop/types"
)

// TestServiceAgainstInitializedStore boots the full stack the way an
// application would: config, connection manager, registry-driven
// migrations, then the lazily bound service facade.
func TestServiceAgainstInitializedStore(t *testing.T) {
	cfg := &database.Config{
		ConnectionConfig: database.ConnectionConfig{
			Type:   "sqlite",
			DBName: filepath.Join(t.TempDir(), "shop"),
		},
		MigrateConfig: database.MigrateConfig{
			EnableMigrateOnStartup: true,
		},
	}
	_, err := database.InitDB(cfg)
	require.NoError(t, err)
	defer func() { _ = database.CloseDB() }()

	ctx := context.Background()
	brands := phoneshop.NewService[models.Brand, *models.Brand]()

	require.NoError(t, brands.Save(ctx, &models.Brand{Name: "Acme", Slug: "acme"}))

	found, err := brands.Find(ctx, types.Eq("slug", "acme"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Acme", found.Name)

	require.NoError(t, brands.SaveOrUpdate(ctx,
		&models.Brand{Name: "Acme Corp", Slug: "acme"}, types.Eq("slug", "acme")))
	count, err := brands.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	order := types.Asc("name")
	all, err := brands.All(ctx, &order)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Acme Corp", all[0].Name)

	removed, err := brands.RemoveIfExists(ctx, types.Eq("slug", "acme"))
	require.NoError(t, err)
	assert.True(t, removed)

	shop := phoneshop.NewShop(database.GetDB(), nil)
	page, err := shop.Customer.GetPhones(ctx, services.PhonesFilterForm{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Result.TotalItems)
}
