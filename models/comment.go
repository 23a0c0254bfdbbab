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

import (
	"time"

	"github.com/uptrace/bun"
)

// Comment is a customer review of a phone. The unique (user_id, phone_slug)
// index backs the one-comment-per-user-per-phone upsert key.
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID    int64     `bun:"user_id,notnull,unique:ux_comments_user_phone" json:"user_id"`
	PhoneSlug string    `bun:"phone_slug,notnull,unique:ux_comments_user_phone" json:"phone_slug"`
	Rating    *int      `bun:"rating" json:"rating"`
	Body      string    `bun:"body" json:"body"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}

func (c *Comment) GetID() int64   { return c.ID }
func (c *Comment) SetID(id int64) { c.ID = id }
