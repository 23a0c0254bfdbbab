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
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/mlevkov/phoneshop/database"
	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/types"
)

// newTestDB opens an isolated SQLite store with every registered model's
// table. The single connection makes concurrent transactions queue the way
// a row-locking server would.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+filepath.Join(t.TempDir(), "shop.db"))
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()
	for _, model := range database.RegisteredModelInstances() {
		_, err := db.NewCreateTable().Model(model).Exec(ctx)
		require.NoError(t, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func intPtr(v int) *int { return &v }

func TestInsertAndFindOne(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Phone, *models.Phone](db)
	ctx := context.Background()

	phone := &models.Phone{
		BrandSlug: "acme",
		PhoneSlug: "acme-one",
		PhoneName: "Acme One",
		Price:     intPtr(499),
		Stock:     intPtr(3),
	}
	require.NoError(t, repo.Insert(ctx, phone))
	assert.NotZero(t, phone.ID)

	found, err := repo.FindOne(ctx, types.Eq("phone_slug", "acme-one"))
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Acme One", found.PhoneName)

	missing, err := repo.FindOne(ctx, types.Eq("phone_slug", "no-such-phone"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInsertOrUpdateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Brand, *models.Brand](db)
	ctx := context.Background()

	key := types.Eq("slug", "acme")
	require.NoError(t, repo.InsertOrUpdate(ctx, &models.Brand{Name: "Acme", Slug: "acme"}, key))
	require.NoError(t, repo.InsertOrUpdate(ctx, &models.Brand{Name: "Acme", Slug: "acme"}, key))

	count, err := repo.Count(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertOrUpdateTransfersIdentity(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Brand, *models.Brand](db)
	ctx := context.Background()

	key := types.Eq("slug", "acme")
	first := &models.Brand{Name: "Acme", Slug: "acme"}
	require.NoError(t, repo.InsertOrUpdate(ctx, first, key))

	second := &models.Brand{Name: "Acme Corp", Slug: "acme"}
	require.NoError(t, repo.InsertOrUpdate(ctx, second, key))
	assert.Equal(t, first.ID, second.ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	current, err := repo.FindOne(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Acme Corp", current.Name)
}

func TestInsertOrUpdateConcurrentSameKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.PriceSubscriber, *models.PriceSubscriber](db)
	ctx := context.Background()

	key := types.And(
		types.Eq("brand_slug", "acme"),
		types.Eq("phone_slug", "acme-one"),
		types.Eq("email", "a@example.com"),
	)

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.InsertOrUpdate(ctx, &models.PriceSubscriber{
				BrandSlug: "acme",
				PhoneSlug: "acme-one",
				Email:     "a@example.com",
			}, key)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d", i)
	}
	count, err := repo.Count(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertIfAbsentKeepsExistingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Brand, *models.Brand](db)
	ctx := context.Background()

	key := types.Eq("slug", "acme")
	original := &models.Brand{Name: "Original", Slug: "acme"}
	require.NoError(t, repo.Insert(ctx, original))

	candidate := &models.Brand{Name: "Replacement", Slug: "acme"}
	kept, err := repo.InsertIfAbsent(ctx, candidate, key)
	require.NoError(t, err)
	assert.Equal(t, original.ID, kept.ID)
	assert.Equal(t, "Original", kept.Name)
	assert.Zero(t, candidate.ID, "losing candidate must not be persisted")

	count, err := repo.Count(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertIfAbsentInsertsWhenMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Brand, *models.Brand](db)
	ctx := context.Background()

	candidate := &models.Brand{Name: "Acme", Slug: "acme"}
	kept, err := repo.InsertIfAbsent(ctx, candidate, types.Eq("slug", "acme"))
	require.NoError(t, err)
	assert.Same(t, candidate, kept)
	assert.NotZero(t, candidate.ID)
}

func TestAverageOverEmptySetIsAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Comment, *models.Comment](db)
	ctx := context.Background()

	avg, err := repo.Average(ctx, "rating", types.Eq("phone_slug", "acme-one"))
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestAverageIgnoresNullRatings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	users := NewRepository[models.User, *models.User](db)
	alice := &models.User{Email: "alice@example.com", Name: "Alice"}
	bob := &models.User{Email: "bob@example.com", Name: "Bob"}
	require.NoError(t, users.Insert(ctx, alice))
	require.NoError(t, users.Insert(ctx, bob))

	comments := NewRepository[models.Comment, *models.Comment](db)
	require.NoError(t, comments.Insert(ctx, &models.Comment{
		UserID: alice.ID, PhoneSlug: "acme-one", Rating: intPtr(4), Body: "good",
	}))
	require.NoError(t, comments.Insert(ctx, &models.Comment{
		UserID: bob.ID, PhoneSlug: "acme-one", Body: "no rating",
	}))

	avg, err := comments.Average(ctx, "rating", types.Eq("phone_slug", "acme-one"))
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 4.0, *avg, 1e-9)
}

func TestUpdateTrackingConflict(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Brand, *models.Brand](db)
	ctx := context.Background()

	stale := &models.Brand{Name: "Acme", Slug: "acme"}
	require.NoError(t, repo.Insert(ctx, stale))

	// Loading attaches a fresh instance over the same identity.
	live, err := repo.FindOne(ctx, types.Eq("slug", "acme"))
	require.NoError(t, err)
	require.NotNil(t, live)

	stale.Name = "Stale Update"
	err = repo.Update(ctx, stale)
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrPersistence)

	// Detaching the live instance frees the identity again.
	repo.Detach(live)
	require.NoError(t, repo.Update(ctx, stale))
}

func TestUpdateMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Brand, *models.Brand](db)
	ctx := context.Background()

	ghost := &models.Brand{Name: "Ghost", Slug: "ghost"}
	ghost.ID = 424242
	err := repo.Update(ctx, ghost)
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRemoveMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Brand, *models.Brand](db)
	ctx := context.Background()

	ghost := &models.Brand{Name: "Ghost", Slug: "ghost"}
	ghost.ID = 424242
	err := repo.Remove(ctx, ghost)
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRemoveIfExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Brand, *models.Brand](db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.Brand{Name: "Acme", Slug: "acme"}))

	removed, err := repo.RemoveIfExists(ctx, types.Eq("slug", "acme"))
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.RemoveIfExists(ctx, types.Eq("slug", "acme"))
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPageWindows(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Phone, *models.Phone](db)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		require.NoError(t, repo.Insert(ctx, &models.Phone{
			BrandSlug: "acme",
			PhoneSlug: fmt.Sprintf("acme-%02d", i),
			PhoneName: fmt.Sprintf("Acme %02d", i),
		}))
	}

	order := types.Asc("phone_name")

	page1, err := repo.Page(ctx, types.NewPageRequest(1, 10), &order)
	require.NoError(t, err)
	assert.Equal(t, 25, page1.TotalItems)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Len(t, page1.Items, 10)
	assert.Equal(t, "Acme 01", page1.Items[0].PhoneName)

	page3, err := repo.Page(ctx, types.NewPageRequest(3, 10), &order)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)

	// Page numbers below 1 normalize to the first window.
	page0, err := repo.Page(ctx, types.NewPageRequest(0, 10), &order)
	require.NoError(t, err)
	assert.Equal(t, 1, page0.Page)
	assert.Len(t, page0.Items, 10)

	// Past the end is empty, not an error.
	page4, err := repo.Page(ctx, types.NewPageRequest(4, 10), &order)
	require.NoError(t, err)
	assert.Empty(t, page4.Items)
	assert.Equal(t, 3, page4.TotalPages)
}

func TestFindAllOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[models.Phone, *models.Phone](db)
	ctx := context.Background()

	for _, p := range []struct {
		slug  string
		price int
	}{
		{"mid", 500}, {"cheap", 100}, {"flagship", 1000},
	} {
		require.NoError(t, repo.Insert(ctx, &models.Phone{
			BrandSlug: "acme",
			PhoneSlug: p.slug,
			PhoneName: p.slug,
			Price:     intPtr(p.price),
		}))
	}

	order := types.Desc("price")
	phones, err := repo.FindAll(ctx, &order)
	require.NoError(t, err)
	require.Len(t, phones, 3)
	assert.Equal(t, "flagship", phones[0].PhoneSlug)
	assert.Equal(t, "cheap", phones[2].PhoneSlug)
}
