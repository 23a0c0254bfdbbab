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
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONObject is a convenience type for JSON columns mapped to objects,
// such as phone specification documents.
type JSONObject map[string]interface{}

// JSONStrings is a convenience type for JSON columns holding string lists,
// such as phone image URLs.
type JSONStrings []string

// Value implements driver.Valuer for JSONObject.
func (j JSONObject) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner for JSONObject.
func (j *JSONObject) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONObject)
		return nil
	}
	bytes, ok := toBytes(value)
	if !ok {
		return errors.New("type assertion must be []byte or string")
	}
	return json.Unmarshal(bytes, j)
}

// Value implements driver.Valuer for JSONStrings.
func (j JSONStrings) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner for JSONStrings.
func (j *JSONStrings) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONStrings, 0)
		return nil
	}
	bytes, ok := toBytes(value)
	if !ok {
		return errors.New("type assertion must be []byte or string")
	}
	return json.Unmarshal(bytes, j)
}

func toBytes(value interface{}) ([]byte, bool) {
	switch v := value.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	default:
		return nil, false
	}
}
