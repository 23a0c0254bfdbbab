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

package types

import (
	"github.com/uptrace/bun"
)

// Predicate is a pure, composable row filter. Implementations form a closed
// set of primitives so that every predicate translates deterministically to a
// WHERE clause regardless of the backing dialect.
type Predicate interface {
	Apply(q *bun.SelectQuery) *bun.SelectQuery
}

type eqPredicate struct {
	column string
	value  interface{}
}

func (p eqPredicate) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("? = ?", bun.Ident(p.column), p.value)
}

// Eq matches rows whose column equals value.
func Eq(column string, value interface{}) Predicate {
	return eqPredicate{column: column, value: value}
}

type containsPredicate struct {
	column string
	term   string
}

func (p containsPredicate) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("? LIKE ?", bun.Ident(p.column), "%"+p.term+"%")
}

// Contains matches rows whose column contains term as a substring.
// An empty term matches every row, mirroring LIKE '%%'.
func Contains(column, term string) Predicate {
	return containsPredicate{column: column, term: term}
}

type cmpPredicate struct {
	column string
	op     string
	value  interface{}
}

func (p cmpPredicate) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("? "+p.op+" ?", bun.Ident(p.column), p.value)
}

// Gte matches rows whose column is greater than or equal to value.
// NULL columns never match, the way SQL comparison semantics work.
func Gte(column string, value interface{}) Predicate {
	return cmpPredicate{column: column, op: ">=", value: value}
}

// Lte matches rows whose column is less than or equal to value.
func Lte(column string, value interface{}) Predicate {
	return cmpPredicate{column: column, op: "<=", value: value}
}

type flagPredicate struct {
	column string
	value  bool
}

func (p flagPredicate) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("? = ?", bun.Ident(p.column), p.value)
}

// Flag matches rows whose boolean column equals value.
func Flag(column string, value bool) Predicate {
	return flagPredicate{column: column, value: value}
}

type andPredicate struct {
	preds []Predicate
}

func (p andPredicate) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	for _, pred := range p.preds {
		if pred != nil {
			q = pred.Apply(q)
		}
	}
	return q
}

// And combines predicates conjunctively. And() with no arguments matches
// every row.
func And(preds ...Predicate) Predicate {
	return andPredicate{preds: preds}
}

// Order describes a single ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Apply appends the order term to the select query.
func (o Order) Apply(q *bun.SelectQuery) *bun.SelectQuery {
	if o.Column == "" {
		return q
	}
	if o.Desc {
		return q.OrderExpr("? DESC", bun.Ident(o.Column))
	}
	return q.OrderExpr("? ASC", bun.Ident(o.Column))
}

// Asc orders ascending by column.
func Asc(column string) Order { return Order{Column: column} }

// Desc orders descending by column.
func Desc(column string) Order { return Order{Column: column, Desc: true} }
