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

// Package phoneshop exposes the entity access layer as a lazily bound
// service facade over the global database connection, plus constructors
// for the shop services.
package phoneshop

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	"github.com/mlevkov/phoneshop/database"
	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/repository"
	"github.com/mlevkov/phoneshop/services"
	"github.com/mlevkov/phoneshop/specsapi"
	"github.com/mlevkov/phoneshop/types"
)

// Service is the entity-level surface bound to the global connection. It
// mirrors repository.Repository with the binding deferred until first use,
// so callers may construct services before database.InitDB has run.
type Service[T any] interface {
	// Find returns the single entity matching the criteria, or (nil, nil).
	Find(ctx context.Context, criteria ...types.Predicate) (*T, error)

	// All returns the entities matching the criteria in the given order.
	All(ctx context.Context, order *types.Order, criteria ...types.Predicate) ([]*T, error)

	// Page returns one window of the matching entities.
	Page(ctx context.Context, req types.PageRequest, order *types.Order, criteria ...types.Predicate) (*types.Page[T], error)

	// Count returns the number of matching entities.
	Count(ctx context.Context, criteria ...types.Predicate) (int, error)

	// Save inserts a new entity.
	Save(ctx context.Context, model *T) error

	// Update modifies an existing entity.
	Update(ctx context.Context, model *T) error

	// Remove deletes an existing entity.
	Remove(ctx context.Context, model *T) error

	// SaveOrUpdate upserts the entity keyed by the criteria.
	SaveOrUpdate(ctx context.Context, model *T, criteria ...types.Predicate) error

	// SaveIfAbsent inserts the entity unless the criteria already match a
	// row, returning the surviving entity.
	SaveIfAbsent(ctx context.Context, model *T, criteria ...types.Predicate) (*T, error)

	// RemoveIfExists deletes the entity matching the criteria, if any.
	RemoveIfExists(ctx context.Context, criteria ...types.Predicate) (bool, error)

	// SelectBuilder returns a Bun select query builder for the entity.
	SelectBuilder() *bun.SelectQuery
}

type baseServiceImpl[T any, PT interface {
	*T
	models.Identifiable
}] struct {
	repo repository.Repository[T]
	once sync.Once
}

// NewService returns a Service bound to the global database connection:
// NewService[models.Phone, *models.Phone]().
func NewService[T any, PT interface {
	*T
	models.Identifiable
}]() Service[T] {
	return &baseServiceImpl[T, PT]{}
}

func (s *baseServiceImpl[T, PT]) baseRepo() repository.Repository[T] {
	s.once.Do(func() { s.repo = repository.NewRepository[T, PT](database.GetDB()) })
	return s.repo
}

func (s *baseServiceImpl[T, PT]) Find(ctx context.Context, criteria ...types.Predicate) (*T, error) {
	return s.baseRepo().FindOne(ctx, criteria...)
}

func (s *baseServiceImpl[T, PT]) All(ctx context.Context, order *types.Order, criteria ...types.Predicate) ([]*T, error) {
	return s.baseRepo().FindAll(ctx, order, criteria...)
}

func (s *baseServiceImpl[T, PT]) Page(ctx context.Context, req types.PageRequest, order *types.Order, criteria ...types.Predicate) (*types.Page[T], error) {
	return s.baseRepo().Page(ctx, req, order, criteria...)
}

func (s *baseServiceImpl[T, PT]) Count(ctx context.Context, criteria ...types.Predicate) (int, error) {
	return s.baseRepo().Count(ctx, criteria...)
}

func (s *baseServiceImpl[T, PT]) Save(ctx context.Context, model *T) error {
	return s.baseRepo().Insert(ctx, model)
}

func (s *baseServiceImpl[T, PT]) Update(ctx context.Context, model *T) error {
	return s.baseRepo().Update(ctx, model)
}

func (s *baseServiceImpl[T, PT]) Remove(ctx context.Context, model *T) error {
	return s.baseRepo().Remove(ctx, model)
}

func (s *baseServiceImpl[T, PT]) SaveOrUpdate(ctx context.Context, model *T, criteria ...types.Predicate) error {
	return s.baseRepo().InsertOrUpdate(ctx, model, criteria...)
}

func (s *baseServiceImpl[T, PT]) SaveIfAbsent(ctx context.Context, model *T, criteria ...types.Predicate) (*T, error) {
	return s.baseRepo().InsertIfAbsent(ctx, model, criteria...)
}

func (s *baseServiceImpl[T, PT]) RemoveIfExists(ctx context.Context, criteria ...types.Predicate) (bool, error) {
	return s.baseRepo().RemoveIfExists(ctx, criteria...)
}

func (s *baseServiceImpl[T, PT]) SelectBuilder() *bun.SelectQuery {
	return s.baseRepo().NewSelect()
}

// Shop bundles the use-case services over one connection.
type Shop struct {
	Customer *services.CustomerPhones
	Admin    *services.AdminPhones
	Promo    *services.PromoCodes
}

// NewShop wires the services against the given connection and spec client.
// A nil client selects the public specifications API.
func NewShop(db *bun.DB, specs *specsapi.Client) *Shop {
	if specs == nil {
		specs = specsapi.NewClient("")
	}
	return &Shop{
		Customer: services.NewCustomerPhones(db),
		Admin:    services.NewAdminPhones(db, specs),
		Promo:    services.NewPromoCodes(db),
	}
}
