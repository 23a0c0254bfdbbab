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

import "github.com/mlevkov/phoneshop/database"

// Referenced tables (users, brands, phones) migrate before the tables that
// carry foreign keys to them.
func init() {
	database.RegisteredModel(database.NewModelAdapter((*User)(nil), 1))
	database.RegisteredModel(database.NewModelAdapter((*Brand)(nil), 2))
	database.RegisteredModel(database.NewModelAdapter((*Phone)(nil), 3))
	database.RegisteredModel(database.NewModelAdapter((*Comment)(nil), 10))
	database.RegisteredModel(database.NewModelAdapter((*PriceSubscriber)(nil), 11))
	database.RegisteredModel(database.NewModelAdapter((*StockSubscriber)(nil), 12))
	database.RegisteredModel(database.NewModelAdapter((*WishListEntry)(nil), 13))
	database.RegisteredModel(database.NewModelAdapter((*PromoCode)(nil), 14))
}
