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

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// WithinTx runs fn inside a single transactional scope: committed when fn
// returns nil, rolled back on error, cancellation, or panic. The connection
// backing the scope is released exactly once on every exit path.
//
// A read-then-write sequence inside fn is atomic relative to other scopes on
// the same rows, subject to the store's isolation level; unique indexes back
// this up by failing the losing writer instead of allowing duplicates.
func WithinTx(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) error) error {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", ErrConnection, err)
	}

	var done bool
	defer func() {
		if !done {
			// Rollback is best effort; the driver discards the scope when
			// the connection is returned regardless.
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				GetLogger().Error("Failed to rollback transaction", "error", rbErr)
			}
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return ClassifyError(err)
	}
	done = true
	return nil
}
