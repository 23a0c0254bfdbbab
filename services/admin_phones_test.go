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
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlevkov/phoneshop/repository"
	"github.com/mlevkov/phoneshop/specsapi"
	"github.com/mlevkov/phoneshop/types"
)

const specsTestURL = "http://specs.test"

func newMockSpecsClient(t *testing.T) *specsapi.Client {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return specsapi.NewClient(specsTestURL, specsapi.WithHTTPClient(hc))
}

func TestAddOrUpdatePhoneImportsSpecs(t *testing.T) {
	db := newTestDB(t)
	specs := newMockSpecsClient(t)
	svc := NewAdminPhones(db, specs)
	ctx := context.Background()

	httpmock.RegisterResponder("GET", specsTestURL+"/v2/acme-one",
		httpmock.NewStringResponder(200, `{
			"status": true,
			"data": {
				"brand": "Acme",
				"phone_name": "Acme One",
				"thumbnail": "http://img.test/acme-one.jpg",
				"phone_images": ["http://img.test/1.jpg", "http://img.test/2.jpg"],
				"release_date": "Released 2025, March",
				"dimension": "160 x 74 x 8 mm",
				"os": "Android 15",
				"storage": "256GB",
				"specifications": [
					{"title": "Display", "specs": [{"key": "Type", "val": ["OLED"]}]}
				]
			}
		}`))

	form := PhoneSpecForm{
		PhoneSlug: "acme-one",
		BrandSlug: "acme",
		Price:     intPtr(799),
		Stock:     intPtr(10),
	}
	phone, err := svc.AddOrUpdatePhone(ctx, form)
	require.NoError(t, err)
	require.NotNil(t, phone)
	assert.Equal(t, "Acme One", phone.PhoneName)
	assert.Equal(t, "Android 15", phone.Os)
	assert.Len(t, phone.Images, 2)
	assert.Contains(t, phone.Specifications, "Display")

	// A second import for the same slug refreshes the row instead of
	// creating a duplicate.
	form.Price = intPtr(699)
	again, err := svc.AddOrUpdatePhone(ctx, form)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, phone.ID, again.ID)

	phones := repository.NewPhoneRepository(db)
	count, err := phones.Count(ctx, types.Eq("phone_slug", "acme-one"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	stored, err := phones.GetBySlug(ctx, "acme-one")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.Price)
	assert.Equal(t, 699, *stored.Price)
}

func TestAddOrUpdatePhoneRemoteMiss(t *testing.T) {
	db := newTestDB(t)
	specs := newMockSpecsClient(t)
	svc := NewAdminPhones(db, specs)
	ctx := context.Background()

	httpmock.RegisterResponder("GET", specsTestURL+"/v2/no-such-phone",
		httpmock.NewStringResponder(404, `{"status": false}`))

	phone, err := svc.AddOrUpdatePhone(ctx, PhoneSpecForm{PhoneSlug: "no-such-phone"})
	require.NoError(t, err)
	assert.Nil(t, phone)

	phones := repository.NewPhoneRepository(db)
	count, err := phones.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAdminGetPhonesSeesHidden(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminPhones(db, newMockSpecsClient(t))
	ctx := context.Background()

	seedPhone(t, db, "visible", 500, 1, false)
	seedPhone(t, db, "hidden", 400, 1, true)

	page, err := svc.GetPhones(ctx, PhonesFilterForm{}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Result.Items, 2)
}

func TestSetVisibility(t *testing.T) {
	db := newTestDB(t)
	admin := NewAdminPhones(db, newMockSpecsClient(t))
	customer := NewCustomerPhones(db)
	ctx := context.Background()

	seedPhone(t, db, "acme-one", 500, 1, false)

	require.NoError(t, admin.SetVisibility(ctx, "acme-one", true))
	details, err := customer.GetPhone(ctx, "acme-one")
	require.NoError(t, err)
	assert.Nil(t, details)

	require.NoError(t, admin.SetVisibility(ctx, "acme-one", false))
	details, err = customer.GetPhone(ctx, "acme-one")
	require.NoError(t, err)
	assert.NotNil(t, details)
}

func TestSetPriceAndStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminPhones(db, newMockSpecsClient(t))
	ctx := context.Background()

	seedPhone(t, db, "acme-one", 500, 0, false)

	require.NoError(t, svc.SetPrice(ctx, "acme-one", 450))
	require.NoError(t, svc.SetStock(ctx, "acme-one", 7))

	phones := repository.NewPhoneRepository(db)
	phone, err := phones.GetBySlug(ctx, "acme-one")
	require.NoError(t, err)
	require.NotNil(t, phone)
	assert.Equal(t, 450, *phone.Price)
	assert.Equal(t, 7, *phone.Stock)
	assert.True(t, phone.InStock())
}

func TestImportBrands(t *testing.T) {
	db := newTestDB(t)
	specs := newMockSpecsClient(t)
	svc := NewAdminPhones(db, specs)
	ctx := context.Background()

	httpmock.RegisterResponder("GET", specsTestURL+"/v2/brands",
		httpmock.NewStringResponder(200, `{
			"status": true,
			"data": [
				{"brand_id": 1, "brand_name": "Acme", "brand_slug": "acme", "device_count": 10},
				{"brand_id": 2, "brand_name": "Bolt", "brand_slug": "bolt", "device_count": 4}
			]
		}`))

	imported, err := svc.ImportBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	// Re-import keeps the existing rows.
	imported, err = svc.ImportBrands(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, imported)

	brands := repository.NewBrandRepository(db)
	all, err := brands.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
