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

// Package models defines the persisted entity types of the phone shop and
// the identity capability shared by all of them.
package models

// Identifiable is the capability every persisted entity exposes: a mutable
// surrogate identity assigned by the store on creation. The repository layer
// moves identity between instances through this interface only, never by
// poking concrete struct fields.
type Identifiable interface {
	GetID() int64
	SetID(id int64)
}
