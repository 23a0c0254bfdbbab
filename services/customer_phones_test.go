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
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/mlevkov/phoneshop/database"
	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/repository"
	"github.com/mlevkov/phoneshop/types"
)

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

func seedUser(t *testing.T, db *bun.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Name: "Test User", Role: models.RoleCustomer}
	users := repository.NewRepository[models.User, *models.User](db)
	require.NoError(t, users.Insert(context.Background(), user))
	return user
}

func seedPhone(t *testing.T, db *bun.DB, slug string, price, stock int, hidden bool) *models.Phone {
	t.Helper()
	phone := &models.Phone{
		BrandSlug: "acme",
		PhoneSlug: slug,
		PhoneName: slug,
		Price:     intPtr(price),
		Stock:     intPtr(stock),
		Hidden:    hidden,
	}
	phones := repository.NewPhoneRepository(db)
	require.NoError(t, phones.Insert(context.Background(), phone))
	return phone
}

func TestGetPhonesStockFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	seedPhone(t, db, "in-stock", 500, 3, false)
	seedPhone(t, db, "sold-out", 400, 0, false)
	seedPhone(t, db, "hidden-in-stock", 300, 5, true)

	page, err := svc.GetPhones(ctx, PhonesFilterForm{InStock: true}, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Result.Items, 1)
	assert.Equal(t, "in-stock", page.Result.Items[0].PhoneSlug)

	// Without the flag the sold-out phone is listed, the hidden one never is.
	page, err = svc.GetPhones(ctx, PhonesFilterForm{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Result.Items, 2)
	for _, phone := range page.Result.Items {
		assert.NotEqual(t, "hidden-in-stock", phone.PhoneSlug)
	}
}

func TestGetPhonesPriceRangeAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	seedPhone(t, db, "cheap", 100, 1, false)
	seedPhone(t, db, "mid", 500, 1, false)
	seedPhone(t, db, "flagship", 1000, 1, false)

	form := PhonesFilterForm{PriceMin: intPtr(200), PriceMax: intPtr(1000), OrderBy: "Price"}
	page, err := svc.GetPhones(ctx, form, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Result.Items, 2)
	assert.Equal(t, "mid", page.Result.Items[0].PhoneSlug)
	assert.Equal(t, "flagship", page.Result.Items[1].PhoneSlug)
}

func TestGetPhoneHiddenIsAbsent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	seedPhone(t, db, "secret", 500, 1, true)

	details, err := svc.GetPhone(ctx, "secret")
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestPostCommentReplacesEarlierReview(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	seedPhone(t, db, "acme-one", 500, 1, false)

	ok, err := svc.PostComment(ctx, CommentForm{
		UserEmail: user.Email, PhoneSlug: "acme-one", Rating: intPtr(4), Body: "great",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.PostComment(ctx, CommentForm{
		UserEmail: user.Email, PhoneSlug: "acme-one", Rating: intPtr(2), Body: "broke after a week",
	})
	require.NoError(t, err)
	assert.True(t, ok)

	comments := repository.NewRepository[models.Comment, *models.Comment](db)
	count, err := comments.Count(ctx, types.Eq("phone_slug", "acme-one"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	details, err := svc.GetPhone(ctx, "acme-one")
	require.NoError(t, err)
	require.NotNil(t, details)
	require.NotNil(t, details.AverageRating)
	assert.InDelta(t, 2.0, *details.AverageRating, 1e-9)
}

func TestPostCommentUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	seedPhone(t, db, "acme-one", 500, 1, false)
	ok, err := svc.PostComment(ctx, CommentForm{
		UserEmail: "nobody@example.com", PhoneSlug: "acme-one", Rating: intPtr(5),
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAverageRatingRounding(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	seedPhone(t, db, "acme-one", 500, 1, false)
	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	carol := seedUser(t, db, "carol@example.com")

	for _, post := range []struct {
		user   *models.User
		rating int
	}{
		{alice, 5}, {bob, 4}, {carol, 4},
	} {
		ok, err := svc.PostComment(ctx, CommentForm{
			UserEmail: post.user.Email, PhoneSlug: "acme-one", Rating: intPtr(post.rating),
		})
		require.NoError(t, err)
		require.True(t, ok)
	}

	details, err := svc.GetPhone(ctx, "acme-one")
	require.NoError(t, err)
	require.NotNil(t, details)
	require.NotNil(t, details.AverageRating)
	// 13/3 = 4.333... rounds to one decimal.
	assert.InDelta(t, 4.3, *details.AverageRating, 1e-9)
}

func TestSubscribePriceIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	form := PriceSubscriberForm{BrandSlug: "acme", PhoneSlug: "acme-one", Email: "a@example.com"}
	require.NoError(t, svc.SubscribePrice(ctx, form))
	require.NoError(t, svc.SubscribePrice(ctx, form))

	subs := repository.NewPriceSubscriberRepository(db)
	all, err := subs.ForPhone(ctx, "acme", "acme-one")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubscribeStockIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	form := StockSubscriberForm{BrandSlug: "acme", PhoneSlug: "acme-one", Email: "a@example.com"}
	require.NoError(t, svc.SubscribeStock(ctx, form))
	require.NoError(t, svc.SubscribeStock(ctx, form))

	subs := repository.NewStockSubscriberRepository(db)
	all, err := subs.ForPhone(ctx, "acme", "acme-one")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWishListFlow(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	seedPhone(t, db, "acme-one", 500, 1, false)

	require.NoError(t, svc.AddToWishList(ctx, "acme-one", user.Email))
	require.NoError(t, svc.AddToWishList(ctx, "acme-one", user.Email))

	list, err := svc.GetWishList(ctx, user.Email)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Phone)
	assert.Equal(t, "acme-one", list[0].Phone.PhoneSlug)

	removed, err := svc.RemoveFromWishList(ctx, "acme-one", user.Email)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveFromWishList(ctx, "acme-one", user.Email)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAddToWishListHiddenPhone(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	user := seedUser(t, db, "alice@example.com")
	seedPhone(t, db, "secret", 500, 1, true)

	err := svc.AddToWishList(ctx, "secret", user.Email)
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestGetPhoneCommentsPaging(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerPhones(db)
	ctx := context.Background()

	seedPhone(t, db, "acme-one", 500, 1, false)
	comments := repository.NewRepository[models.Comment, *models.Comment](db)
	for i := 0; i < 25; i++ {
		user := seedUser(t, db, "user"+string(rune('a'+i))+"@example.com")
		require.NoError(t, comments.Insert(ctx, &models.Comment{
			UserID: user.ID, PhoneSlug: "acme-one", Rating: intPtr(3), Body: "ok",
		}))
	}

	page, err := svc.GetPhoneComments(ctx, "acme-one", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, page.Result.TotalItems)
	assert.Equal(t, 3, page.Result.TotalPages)
	assert.Len(t, page.Result.Items, 10)
	require.NotNil(t, page.Result.Items[0].User)

	last, err := svc.GetPhoneComments(ctx, "acme-one", 3, 10)
	require.NoError(t, err)
	assert.Len(t, last.Result.Items, 5)

	past, err := svc.GetPhoneComments(ctx, "acme-one", 4, 10)
	require.NoError(t, err)
	assert.Empty(t, past.Result.Items)
}
