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
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/mlevkov/phoneshop/database"
	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/repository"
	"github.com/mlevkov/phoneshop/types"
	"github.com/mlevkov/phoneshop/utils"
)

// CustomerPhones serves the customer-facing catalog: filtered listings,
// phone details with ratings, reviews, subscriptions, and wish lists.
// Hidden phones do not exist from this service's point of view.
type CustomerPhones struct {
	phones    *repository.PhoneRepository
	users     repository.Repository[models.User]
	comments  repository.Repository[models.Comment]
	priceSubs *repository.PriceSubscriberRepository
	stockSubs *repository.StockSubscriberRepository
	wishLists repository.Repository[models.WishListEntry]
	logger    *logrus.Logger
}

func NewCustomerPhones(db *bun.DB) *CustomerPhones {
	return &CustomerPhones{
		phones:    repository.NewPhoneRepository(db),
		users:     repository.NewRepository[models.User, *models.User](db),
		comments:  repository.NewRepository[models.Comment, *models.Comment](db),
		priceSubs: repository.NewPriceSubscriberRepository(db),
		stockSubs: repository.NewStockSubscriberRepository(db),
		wishLists: repository.NewRepository[models.WishListEntry, *models.WishListEntry](db),
		logger:    utils.NewLogger("SHOP"),
	}
}

// GetPhones returns one window of the visible catalog narrowed by the
// filter form.
func (s *CustomerPhones) GetPhones(ctx context.Context, form PhonesFilterForm, page, pageSize int) (*PhonesPage, error) {
	order := form.order()
	result, err := s.phones.Page(ctx, types.NewPageRequest(page, pageSize), &order, form.predicates(true)...)
	if err != nil {
		return nil, err
	}
	return &PhonesPage{Filter: form, Result: result}, nil
}

// GetPhone returns the visible phone with its average review rating rounded
// to one decimal. An unknown or hidden slug yields (nil, nil).
func (s *CustomerPhones) GetPhone(ctx context.Context, phoneSlug string) (*PhoneDetails, error) {
	phone, err := s.phones.GetVisibleBySlug(ctx, phoneSlug)
	if err != nil || phone == nil {
		return nil, err
	}

	avg, err := s.comments.Average(ctx, "rating", types.Eq("phone_slug", phoneSlug))
	if err != nil {
		return nil, err
	}
	details := &PhoneDetails{Phone: phone}
	if avg != nil {
		rounded := math.Round(*avg*10) / 10
		details.AverageRating = &rounded
	}
	return details, nil
}

// GetPhoneComments returns one window of a phone's reviews with the
// authoring users attached, newest first.
func (s *CustomerPhones) GetPhoneComments(ctx context.Context, phoneSlug string, page, pageSize int) (*CommentsPage, error) {
	order := types.Desc("created_at")
	comments, err := s.comments.FindAllRelated(ctx, []string{"User"}, &order, types.Eq("phone_slug", phoneSlug))
	if err != nil {
		return nil, err
	}

	req := types.NewPageRequest(page, pageSize)
	window := sliceWindow(comments, req)
	return &CommentsPage{
		PhoneSlug: phoneSlug,
		Result:    types.NewPage(req, len(comments), window),
	}, nil
}

// SubscribePrice registers an email for price-drop notifications. A repeat
// subscription with the same triple is a no-op.
func (s *CustomerPhones) SubscribePrice(ctx context.Context, form PriceSubscriberForm) error {
	_, err := s.priceSubs.Subscribe(ctx, &models.PriceSubscriber{
		BrandSlug: form.BrandSlug,
		PhoneSlug: form.PhoneSlug,
		Email:     form.Email,
	})
	return err
}

// SubscribeStock registers an email for restock notifications.
func (s *CustomerPhones) SubscribeStock(ctx context.Context, form StockSubscriberForm) error {
	_, err := s.stockSubs.Subscribe(ctx, &models.StockSubscriber{
		BrandSlug: form.BrandSlug,
		PhoneSlug: form.PhoneSlug,
		Email:     form.Email,
	})
	return err
}

// PostComment stores the user's review of a phone, replacing any earlier
// review by the same user. It reports false when the email is not a
// registered account.
func (s *CustomerPhones) PostComment(ctx context.Context, form CommentForm) (bool, error) {
	user, err := s.users.FindOne(ctx, types.Eq("email", form.UserEmail))
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	comment := &models.Comment{
		UserID:    user.ID,
		PhoneSlug: form.PhoneSlug,
		Rating:    form.Rating,
		Body:      form.Body,
		CreatedAt: time.Now(),
	}
	err = s.comments.InsertOrUpdate(ctx, comment,
		types.Eq("user_id", comment.UserID),
		types.Eq("phone_slug", comment.PhoneSlug),
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddToWishList bookmarks a visible phone for the user. Bookmarking twice
// is a no-op.
func (s *CustomerPhones) AddToWishList(ctx context.Context, phoneSlug, userEmail string) error {
	phone, err := s.phones.GetVisibleBySlug(ctx, phoneSlug)
	if err != nil {
		return err
	}
	if phone == nil {
		return fmt.Errorf("%w: phone %q", database.ErrNotFound, phoneSlug)
	}
	user, err := s.users.FindOne(ctx, types.Eq("email", userEmail))
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%w: user %q", database.ErrNotFound, userEmail)
	}

	entry := &models.WishListEntry{UserID: user.ID, PhoneID: phone.ID}
	_, err = s.wishLists.InsertIfAbsent(ctx, entry,
		types.Eq("user_id", user.ID),
		types.Eq("phone_id", phone.ID),
	)
	return err
}

// RemoveFromWishList drops the bookmark and reports whether one existed.
func (s *CustomerPhones) RemoveFromWishList(ctx context.Context, phoneSlug, userEmail string) (bool, error) {
	phone, err := s.phones.GetBySlug(ctx, phoneSlug)
	if err != nil {
		return false, err
	}
	user, err := s.users.FindOne(ctx, types.Eq("email", userEmail))
	if err != nil {
		return false, err
	}
	if phone == nil || user == nil {
		return false, nil
	}
	return s.wishLists.RemoveIfExists(ctx,
		types.Eq("user_id", user.ID),
		types.Eq("phone_id", phone.ID),
	)
}

// GetWishList returns the user's bookmarked phones.
func (s *CustomerPhones) GetWishList(ctx context.Context, userEmail string) ([]*models.WishListEntry, error) {
	user, err := s.users.FindOne(ctx, types.Eq("email", userEmail))
	if err != nil || user == nil {
		return nil, err
	}
	return s.wishLists.FindAllRelated(ctx, []string{"Phone"}, nil, types.Eq("user_id", user.ID))
}

// sliceWindow cuts the in-memory window the page request describes. A
// window past the end of the slice is empty.
func sliceWindow[T any](items []*T, req types.PageRequest) []*T {
	start := req.GetOffset()
	if start >= len(items) {
		return nil
	}
	end := start + req.GetPageSize()
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
