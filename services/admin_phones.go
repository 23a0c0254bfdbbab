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

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/mlevkov/phoneshop/database"
	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/repository"
	"github.com/mlevkov/phoneshop/specsapi"
	"github.com/mlevkov/phoneshop/types"
	"github.com/mlevkov/phoneshop/utils"
)

// AdminPhones manages the catalog itself: importing phones and brands from
// the specifications API, pricing, stock, and visibility. Unlike the
// customer service it sees hidden phones.
type AdminPhones struct {
	phones    *repository.PhoneRepository
	brands    *repository.BrandRepository
	priceSubs *repository.PriceSubscriberRepository
	stockSubs *repository.StockSubscriberRepository
	specs     *specsapi.Client
	logger    *logrus.Logger
}

func NewAdminPhones(db *bun.DB, specs *specsapi.Client) *AdminPhones {
	return &AdminPhones{
		phones:    repository.NewPhoneRepository(db),
		brands:    repository.NewBrandRepository(db),
		priceSubs: repository.NewPriceSubscriberRepository(db),
		stockSubs: repository.NewStockSubscriberRepository(db),
		specs:     specs,
		logger:    utils.NewLogger("ADMIN"),
	}
}

// GetPhones lists the catalog including hidden phones.
func (s *AdminPhones) GetPhones(ctx context.Context, form PhonesFilterForm, page, pageSize int) (*PhonesPage, error) {
	order := form.order()
	result, err := s.phones.Page(ctx, types.NewPageRequest(page, pageSize), &order, form.predicates(false)...)
	if err != nil {
		return nil, err
	}
	return &PhonesPage{Filter: form, Result: result}, nil
}

// GetPhone returns the phone with the given slug, hidden or not.
func (s *AdminPhones) GetPhone(ctx context.Context, phoneSlug string) (*models.Phone, error) {
	return s.phones.GetBySlug(ctx, phoneSlug)
}

// AddOrUpdatePhone imports the specification sheet for the form's slug from
// the remote API and upserts the catalog entry, shop-owned fields (brand,
// price, stock, visibility) taken from the form. It returns (nil, nil) when
// the remote API has nothing for the slug.
func (s *AdminPhones) AddOrUpdatePhone(ctx context.Context, form PhoneSpecForm) (*models.Phone, error) {
	resp, err := s.specs.PhoneSpecifications(ctx, form.PhoneSlug)
	if err != nil {
		return nil, err
	}
	if !resp.Status {
		s.logger.WithField("phone_slug", form.PhoneSlug).Warn("Specs API has no data for phone")
		return nil, nil
	}

	phone := &models.Phone{
		BrandSlug:      form.BrandSlug,
		PhoneSlug:      form.PhoneSlug,
		PhoneName:      resp.Data.PhoneName,
		Price:          form.Price,
		Stock:          form.Stock,
		Hidden:         form.Hidden,
		Os:             resp.Data.Os,
		Dimension:      resp.Data.Dimension,
		Storage:        resp.Data.Storage,
		ReleaseDate:    resp.Data.ReleaseDate,
		Thumbnail:      resp.Data.Thumbnail,
		Images:         types.JSONStrings(resp.Data.PhoneImages),
		Specifications: specificationsObject(resp.Data.Specifications),
	}
	if err := s.phones.InsertOrUpdateBySlug(ctx, phone); err != nil {
		return nil, err
	}
	return phone, nil
}

// SetVisibility hides or shows a phone in the customer catalog.
func (s *AdminPhones) SetVisibility(ctx context.Context, phoneSlug string, hidden bool) error {
	phone, err := s.phones.GetBySlug(ctx, phoneSlug)
	if err != nil {
		return err
	}
	if phone == nil {
		return fmt.Errorf("%w: phone %q", database.ErrNotFound, phoneSlug)
	}
	phone.Hidden = hidden
	return s.phones.Update(ctx, phone)
}

// SetPrice updates a phone's price, logging how many price subscribers
// would be notified of the change.
func (s *AdminPhones) SetPrice(ctx context.Context, phoneSlug string, price int) error {
	phone, err := s.phones.GetBySlug(ctx, phoneSlug)
	if err != nil {
		return err
	}
	if phone == nil {
		return fmt.Errorf("%w: phone %q", database.ErrNotFound, phoneSlug)
	}
	phone.Price = &price
	if err := s.phones.Update(ctx, phone); err != nil {
		return err
	}

	subs, err := s.priceSubs.ForPhone(ctx, phone.BrandSlug, phone.PhoneSlug)
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"phone_slug":  phoneSlug,
		"price":       price,
		"subscribers": len(subs),
	}).Info("Phone price changed")
	return nil
}

// SetStock updates a phone's stock, logging how many stock subscribers
// would be notified of a restock.
func (s *AdminPhones) SetStock(ctx context.Context, phoneSlug string, stock int) error {
	phone, err := s.phones.GetBySlug(ctx, phoneSlug)
	if err != nil {
		return err
	}
	if phone == nil {
		return fmt.Errorf("%w: phone %q", database.ErrNotFound, phoneSlug)
	}
	wasOut := !phone.InStock()
	phone.Stock = &stock
	if err := s.phones.Update(ctx, phone); err != nil {
		return err
	}

	if wasOut && phone.InStock() {
		subs, err := s.stockSubs.ForPhone(ctx, phone.BrandSlug, phone.PhoneSlug)
		if err != nil {
			return err
		}
		s.logger.WithFields(logrus.Fields{
			"phone_slug":  phoneSlug,
			"stock":       stock,
			"subscribers": len(subs),
		}).Info("Phone back in stock")
	}
	return nil
}

// ImportBrands pulls the remote brand catalog and registers every brand not
// yet known locally. Existing brands are left untouched.
func (s *AdminPhones) ImportBrands(ctx context.Context) (int, error) {
	resp, err := s.specs.ListBrands(ctx)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, remote := range resp.Data {
		brand := &models.Brand{Name: remote.Name, Slug: remote.Slug}
		kept, err := s.brands.InsertIfNotExists(ctx, brand)
		if err != nil {
			return imported, err
		}
		if kept == brand {
			imported++
		}
	}
	return imported, nil
}

// specificationsObject flattens the remote spec groups into the JSON column
// shape: group title → {key: values}.
func specificationsObject(groups []specsapi.SpecGroup) types.JSONObject {
	if len(groups) == 0 {
		return nil
	}
	obj := make(types.JSONObject, len(groups))
	for _, group := range groups {
		specs := make(map[string]interface{}, len(group.Specs))
		for _, item := range group.Specs {
			specs[item.Key] = item.Val
		}
		obj[group.Title] = specs
	}
	return obj
}
