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

	"github.com/mlevkov/phoneshop/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines the single-entity write operations. Update and
// Remove address the row through the entity's identity and report
// database.ErrNotFound when no such row exists.
type CrudRepository[T any] interface {
	Insert(ctx context.Context, entity *T) error

	Update(ctx context.Context, entity *T) error

	Remove(ctx context.Context, entity *T) error

	// Detach removes the entity's identity from the tracked set so another
	// live instance may take over its row.
	Detach(entity *T)
}

// QueryRepository defines the read operations. A read matching nothing is
// data, never an error: FindOne returns (nil, nil) and Average returns
// (nil, nil) over an empty or all-NULL set.
type QueryRepository[T any] interface {
	FindOne(ctx context.Context, criteria ...types.Predicate) (*T, error)

	FindAll(ctx context.Context, order *types.Order, criteria ...types.Predicate) ([]*T, error)

	// FindAllRelated eagerly loads the named Bun relations alongside each row.
	FindAllRelated(ctx context.Context, relations []string, order *types.Order, criteria ...types.Predicate) ([]*T, error)

	Count(ctx context.Context, criteria ...types.Predicate) (int, error)

	Average(ctx context.Context, column string, criteria ...types.Predicate) (*float64, error)

	Page(ctx context.Context, req types.PageRequest, order *types.Order, criteria ...types.Predicate) (*types.Page[T], error)
}

// ConditionalRepository defines the composite protocols. Each runs its
// lookup and write inside one transactional scope, so concurrent callers
// with the same criteria serialize instead of duplicating rows.
type ConditionalRepository[T any] interface {
	// InsertOrUpdate inserts candidate when no row matches the criteria,
	// otherwise it takes over the matched row's identity and updates it.
	InsertOrUpdate(ctx context.Context, candidate *T, criteria ...types.Predicate) error

	// InsertIfAbsent inserts candidate only when no row matches the criteria.
	// It returns the surviving entity: the existing row untouched, or the
	// freshly inserted candidate.
	InsertIfAbsent(ctx context.Context, candidate *T, criteria ...types.Predicate) (*T, error)

	// RemoveIfExists deletes the row matching the criteria when there is one
	// and reports whether a row was removed. A missing row is not an error.
	RemoveIfExists(ctx context.Context, criteria ...types.Predicate) (bool, error)
}

// Repository combines the entity operations and exposes Bun query builders
// for queries the closed predicate set cannot express.
type Repository[T any] interface {
	CrudRepository[T]
	QueryRepository[T]
	ConditionalRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
