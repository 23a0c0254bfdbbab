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

package models

import "github.com/uptrace/bun"

// WishListEntry associates a user with a phone they bookmarked. One row per
// (user, phone) pair.
type WishListEntry struct {
	bun.BaseModel `bun:"table:wish_lists,alias:w"`

	ID      int64 `bun:"id,pk,autoincrement" json:"id"`
	UserID  int64 `bun:"user_id,notnull,unique:ux_wish_lists_user_phone" json:"user_id"`
	PhoneID int64 `bun:"phone_id,notnull,unique:ux_wish_lists_user_phone" json:"phone_id"`

	Phone *Phone `bun:"rel:belongs-to,join:phone_id=id" json:"phone,omitempty"`
}

func (w *WishListEntry) GetID() int64   { return w.ID }
func (w *WishListEntry) SetID(id int64) { w.ID = id }
