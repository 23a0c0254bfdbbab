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
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type txNote struct {
	bun.BaseModel `bun:"table:tx_notes,alias:tn"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Body string `bun:"body,notnull"`
}

func newTxTestDB(t *testing.T) *bun.DB {
	t.Helper()
	// File-backed store: a canceled context may recycle the only pool
	// connection, which would drop a purely in-memory database.
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = db.NewCreateTable().Model((*txNote)(nil)).Exec(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countNotes(t *testing.T, db *bun.DB) int {
	t.Helper()
	count, err := db.NewSelect().Model((*txNote)(nil)).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestWithinTxCommits(t *testing.T) {
	db := newTxTestDB(t)
	err := WithinTx(context.Background(), db, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&txNote{Body: "kept"}).Exec(ctx)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countNotes(t, db))
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	db := newTxTestDB(t)
	boom := errors.New("boom")

	err := WithinTx(context.Background(), db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&txNote{Body: "discarded"}).Exec(ctx); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countNotes(t, db))
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	db := newTxTestDB(t)

	require.Panics(t, func() {
		_ = WithinTx(context.Background(), db, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.NewInsert().Model(&txNote{Body: "discarded"}).Exec(ctx); err != nil {
				return err
			}
			panic("unexpected")
		})
	})
	assert.Equal(t, 0, countNotes(t, db))
}

func TestWithinTxRollsBackOnCancellation(t *testing.T) {
	db := newTxTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := WithinTx(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&txNote{Body: "discarded"}).Exec(ctx); err != nil {
			return err
		}
		cancel()
		return ctx.Err()
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, countNotes(t, db))
}
