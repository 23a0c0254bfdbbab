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

// Package specsapi is a read-only client for the phone specifications API
// (https://github.com/azharimm/phone-specs-api). The catalog degrades
// gracefully when the remote side is down: every call returns the zero DTO
// on transport failure or a non-success status instead of an error, so a
// flaky upstream never breaks the shop. Context cancellation still
// propagates to the caller.
package specsapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/mlevkov/phoneshop/utils"
)

// DefaultBaseURL is the public deployment of the specifications API.
const DefaultBaseURL = "http://api-mobilespecs.azharimm.site"

const defaultTimeout = 30 * time.Second

// Client calls the specifications API over plain HTTP GET.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

type Option func(*Client)

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger substitutes the client logger.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a client against baseURL; an empty baseURL selects the
// public deployment.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     utils.NewLogger("SPECSAPI"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListBrands fetches the remote brand catalog.
func (c *Client) ListBrands(ctx context.Context) (BrandsResponse, error) {
	var out BrandsResponse
	err := c.get(ctx, "/v2/brands", nil, &out)
	return out, err
}

// ListPhones fetches one page of a brand's phone listing. Pages are
// 1-based on the remote side.
func (c *Client) ListPhones(ctx context.Context, brandSlug string, page int) (PhonesResponse, error) {
	var out PhonesResponse
	query := url.Values{"page": {strconv.Itoa(page)}}
	err := c.get(ctx, "/v2/brands/"+url.PathEscape(brandSlug), query, &out)
	return out, err
}

// PhoneSpecifications fetches the full specification sheet of one phone.
func (c *Client) PhoneSpecifications(ctx context.Context, phoneSlug string) (PhoneDetailResponse, error) {
	var out PhoneDetailResponse
	err := c.get(ctx, "/v2/"+url.PathEscape(phoneSlug), nil, &out)
	return out, err
}

// Search fetches phones matching the query string.
func (c *Client) Search(ctx context.Context, query string) (ListingResponse, error) {
	var out ListingResponse
	err := c.get(ctx, "/v2/search", url.Values{"query": {query}}, &out)
	return out, err
}

// Latest fetches the most recently released phones.
func (c *Client) Latest(ctx context.Context) (ListingResponse, error) {
	var out ListingResponse
	err := c.get(ctx, "/v2/latest", nil, &out)
	return out, err
}

// TopByInterest fetches the most viewed phones.
func (c *Client) TopByInterest(ctx context.Context) (ListingResponse, error) {
	var out ListingResponse
	err := c.get(ctx, "/v2/top-by-interest", nil, &out)
	return out, err
}

// TopByFans fetches the phones with the most fans.
func (c *Client) TopByFans(ctx context.Context) (ListingResponse, error) {
	var out ListingResponse
	err := c.get(ctx, "/v2/top-by-fans", nil, &out)
	return out, err
}

// get issues the request and decodes a 200 response into out. Any other
// outcome leaves out at its zero value: the only error ever returned is
// the context's.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.WithError(err).WithField("url", endpoint).Warn("Specs API request failed")
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"url":    endpoint,
			"status": resp.StatusCode,
		}).Warn("Specs API returned non-success status")
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.WithError(err).WithField("url", endpoint).Warn("Specs API response read failed")
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.WithError(err).WithField("url", endpoint).Warn("Specs API response decode failed")
		zero(out)
	}
	return nil
}

// zero resets a partially decoded DTO so degraded responses stay all-or-nothing.
func zero(out interface{}) {
	switch v := out.(type) {
	case *BrandsResponse:
		*v = BrandsResponse{}
	case *PhonesResponse:
		*v = PhonesResponse{}
	case *PhoneDetailResponse:
		*v = PhoneDetailResponse{}
	case *ListingResponse:
		*v = ListingResponse{}
	}
}
