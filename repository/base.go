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
	"errors"
	"fmt"
	"sync"

	"github.com/mlevkov/phoneshop/database"
	"github.com/mlevkov/phoneshop/models"
	"github.com/mlevkov/phoneshop/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// identity constrains an entity's pointer type to the Identifiable
// capability, so the repository reads and transfers surrogate keys
// without reflection.
type identity[T any] interface {
	*T
	models.Identifiable
}

type baseRepository[T any, PT identity[T]] struct {
	db *bun.DB

	// tracked maps a persisted identity to the live instance owning its row.
	mu      sync.Mutex
	tracked map[int64]*T
}

// NewRepository returns a generic repository backed by the provided Bun DB.
// The second type parameter names the entity's pointer type:
// NewRepository[models.Phone, *models.Phone](db).
func NewRepository[T any, PT identity[T]](db *bun.DB) Repository[T] {
	return &baseRepository[T, PT]{db: db, tracked: make(map[int64]*T)}
}

func (r *baseRepository[T, PT]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepository[T, PT]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepository[T, PT]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepository[T, PT]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepository[T, PT]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

// attach records the instance as the live owner of its identity. Attaching
// over an existing identity replaces the previous owner.
func (r *baseRepository[T, PT]) attach(entity *T) {
	id := PT(entity).GetID()
	if id == 0 {
		return
	}
	r.mu.Lock()
	r.tracked[id] = entity
	r.mu.Unlock()
}

func (r *baseRepository[T, PT]) detachID(id int64) {
	if id == 0 {
		return
	}
	r.mu.Lock()
	delete(r.tracked, id)
	r.mu.Unlock()
}

func (r *baseRepository[T, PT]) Detach(entity *T) {
	r.detachID(PT(entity).GetID())
}

func (r *baseRepository[T, PT]) Insert(ctx context.Context, entity *T) error {
	if _, err := r.db.NewInsert().Model(entity).Exec(ctx); err != nil {
		return database.ClassifyError(err)
	}
	r.attach(entity)
	return nil
}

func (r *baseRepository[T, PT]) Update(ctx context.Context, entity *T) error {
	id := PT(entity).GetID()
	if id == 0 {
		return fmt.Errorf("%w: update requires a persisted entity", database.ErrPersistence)
	}

	r.mu.Lock()
	live, ok := r.tracked[id]
	r.mu.Unlock()
	if ok && live != entity {
		return fmt.Errorf("%w: identity %d is tracked by another live instance, detach it first",
			database.ErrPersistence, id)
	}

	res, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		return database.ClassifyError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports zero affected rows for a no-change update, so zero
		// alone does not prove the row is gone.
		exists, err := r.db.NewSelect().Model(entity).WherePK().Exists(ctx)
		if err != nil {
			return database.ClassifyError(err)
		}
		if !exists {
			return fmt.Errorf("%w: identity %d", database.ErrNotFound, id)
		}
	}
	r.attach(entity)
	return nil
}

func (r *baseRepository[T, PT]) Remove(ctx context.Context, entity *T) error {
	id := PT(entity).GetID()
	if id == 0 {
		return fmt.Errorf("%w: remove requires a persisted entity", database.ErrPersistence)
	}
	res, err := r.db.NewDelete().Model(entity).WherePK().Exec(ctx)
	if err != nil {
		return database.ClassifyError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: identity %d", database.ErrNotFound, id)
	}
	r.detachID(id)
	return nil
}

// lookup finds at most one row matching the criteria, in stable id order,
// using the given database or transaction handle. Absence is (nil, nil).
func (r *baseRepository[T, PT]) lookup(ctx context.Context, idb bun.IDB, criteria ...types.Predicate) (*T, error) {
	entity := new(T)
	q := idb.NewSelect().Model(entity).OrderExpr("id ASC").Limit(1)
	q = applyCriteria(q, criteria)
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, database.ClassifyError(err)
	}
	return entity, nil
}

func (r *baseRepository[T, PT]) FindOne(ctx context.Context, criteria ...types.Predicate) (*T, error) {
	entity, err := r.lookup(ctx, r.db, criteria...)
	if err != nil || entity == nil {
		return nil, err
	}
	r.attach(entity)
	return entity, nil
}

func (r *baseRepository[T, PT]) FindAll(ctx context.Context, order *types.Order, criteria ...types.Predicate) ([]*T, error) {
	return r.FindAllRelated(ctx, nil, order, criteria...)
}

func (r *baseRepository[T, PT]) FindAllRelated(ctx context.Context, relations []string, order *types.Order, criteria ...types.Predicate) ([]*T, error) {
	var entities []*T
	q := r.db.NewSelect().Model(&entities)
	for _, rel := range relations {
		q = q.Relation(rel)
	}
	q = applyCriteria(q, criteria)
	q = applyOrder(q, order)
	if err := q.Scan(ctx); err != nil {
		return nil, database.ClassifyError(err)
	}
	for _, entity := range entities {
		r.attach(entity)
	}
	return entities, nil
}

func (r *baseRepository[T, PT]) Count(ctx context.Context, criteria ...types.Predicate) (int, error) {
	q := r.db.NewSelect().Model((*T)(nil))
	q = applyCriteria(q, criteria)
	total, err := q.Count(ctx)
	if err != nil {
		return 0, database.ClassifyError(err)
	}
	return total, nil
}

// Average computes AVG(column) over the matching rows. An empty match set,
// or one where every value is NULL, yields (nil, nil).
func (r *baseRepository[T, PT]) Average(ctx context.Context, column string, criteria ...types.Predicate) (*float64, error) {
	var avg sql.NullFloat64
	q := r.db.NewSelect().Model((*T)(nil)).ColumnExpr("AVG(?)", bun.Ident(column))
	q = applyCriteria(q, criteria)
	if err := q.Scan(ctx, &avg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, database.ClassifyError(err)
	}
	if !avg.Valid {
		return nil, nil
	}
	value := avg.Float64
	return &value, nil
}

func (r *baseRepository[T, PT]) Page(ctx context.Context, req types.PageRequest, order *types.Order, criteria ...types.Predicate) (*types.Page[T], error) {
	countQuery := r.db.NewSelect().Model((*T)(nil))
	countQuery = applyCriteria(countQuery, criteria)
	total, err := countQuery.Count(ctx)
	if err != nil {
		return nil, database.ClassifyError(err)
	}
	if total == 0 {
		return types.NewPage[T](req, 0, nil), nil
	}

	var entities []*T
	q := r.db.NewSelect().Model(&entities)
	q = applyCriteria(q, criteria)
	q = applyOrder(q, order)
	q = q.Offset(req.GetOffset()).Limit(req.GetPageSize())
	if err := q.Scan(ctx); err != nil {
		return nil, database.ClassifyError(err)
	}
	for _, entity := range entities {
		r.attach(entity)
	}
	return types.NewPage(req, total, entities), nil
}

func (r *baseRepository[T, PT]) InsertOrUpdate(ctx context.Context, candidate *T, criteria ...types.Predicate) error {
	err := database.WithinTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		existing, err := r.lookup(ctx, tx, criteria...)
		if err != nil {
			return err
		}
		if existing == nil {
			if _, err := tx.NewInsert().Model(candidate).Exec(ctx); err != nil {
				return database.ClassifyError(err)
			}
			return nil
		}
		// The matched row's identity moves to the candidate; the stale
		// instance loses its tracked slot.
		id := PT(existing).GetID()
		r.detachID(id)
		PT(candidate).SetID(id)
		if _, err := tx.NewUpdate().Model(candidate).WherePK().Exec(ctx); err != nil {
			return database.ClassifyError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.attach(candidate)
	return nil
}

func (r *baseRepository[T, PT]) InsertIfAbsent(ctx context.Context, candidate *T, criteria ...types.Predicate) (*T, error) {
	var outcome *T
	err := database.WithinTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		existing, err := r.lookup(ctx, tx, criteria...)
		if err != nil {
			return err
		}
		if existing != nil {
			outcome = existing
			return nil
		}
		if _, err := tx.NewInsert().Model(candidate).Exec(ctx); err != nil {
			return database.ClassifyError(err)
		}
		outcome = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.attach(outcome)
	return outcome, nil
}

func (r *baseRepository[T, PT]) RemoveIfExists(ctx context.Context, criteria ...types.Predicate) (bool, error) {
	removed := false
	err := database.WithinTx(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		existing, err := r.lookup(ctx, tx, criteria...)
		if err != nil {
			return err
		}
		if existing == nil {
			return nil
		}
		if _, err := tx.NewDelete().Model(existing).WherePK().Exec(ctx); err != nil {
			return database.ClassifyError(err)
		}
		r.detachID(PT(existing).GetID())
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func applyCriteria(q *bun.SelectQuery, criteria []types.Predicate) *bun.SelectQuery {
	for _, c := range criteria {
		if c != nil {
			q = c.Apply(q)
		}
	}
	return q
}

func applyOrder(q *bun.SelectQuery, order *types.Order) *bun.SelectQuery {
	if order == nil {
		return q.OrderExpr("?TableAlias.id ASC")
	}
	return order.Apply(q)
}
