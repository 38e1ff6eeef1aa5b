/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tablekit Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tables

import (
	"fmt"
	"maps"
)

// Well-known attribute keys.
const (
	KeyTitle    = "title"
	KeyWidth    = "width"
	KeyClass    = "class"
	KeyID       = "id"
	KeySortName = "sort_name"
	KeyLink     = "link"

	keySortable = "sortable"
	keySortBy   = "sort_by"
	keySortMode = "sort_mode"
	keyRowParam = "_row_param"
)

// Attrs is an attribute bag for a table, column, row or cell.
// A key present with a nil value is distinct from an absent key.
type Attrs map[string]any

// Merge returns defaults overlaid by explicit. Explicit keys win, including
// keys explicitly set to nil.
func Merge(defaults, explicit Attrs) Attrs {
	out := make(Attrs, len(defaults)+len(explicit))
	maps.Copy(out, defaults)
	maps.Copy(out, explicit)
	return out
}

// Clone returns a shallow copy. A nil Attrs clones to an empty one.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	maps.Copy(out, a)
	return out
}

// Has reports whether key is present, even with a nil value.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// String returns the value of key formatted as a string and whether it was
// present and non-nil.
func (a Attrs) String(key string) (string, bool) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Title is shorthand for String(KeyTitle).
func (a Attrs) Title() (string, bool) {
	return a.String(KeyTitle)
}

func headerDefaults() Attrs {
	return Attrs{KeyTitle: nil, KeyWidth: "auto", KeyClass: nil, KeySortName: nil}
}

func footerDefaults() Attrs {
	return Attrs{KeyTitle: "", KeyWidth: "auto", KeyClass: nil}
}

func cellDefaults() Attrs {
	return Attrs{KeyTitle: "", KeyClass: nil, KeyLink: nil}
}

func configDefaults() Attrs {
	return Attrs{KeyTitle: nil, KeyWidth: "auto", KeyClass: nil, KeyID: nil}
}
