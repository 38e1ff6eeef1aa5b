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

package csvimport

import (
	"cmp"
	"fmt"
	"sort"
)

// Sort modes accepted by Sort.
const (
	Ascending  = "asc"
	Descending = "desc"
)

// Sort returns a copy of the records ordered by the named column. The sort is
// stable so rows with equal keys keep their file order. Nil values sort first
// in ascending order.
func (r *Records) Sort(column, mode string) (*Records, error) {
	idx, ok := r.ColumnIndex(column)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, column)
	}
	descending := false
	switch mode {
	case "", Ascending:
	case Descending:
		descending = true
	default:
		return nil, fmt.Errorf("invalid sort mode %q", mode)
	}

	rows := make([][]any, len(r.Rows))
	copy(rows, r.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		c := compareValues(rows[i][idx], rows[j][idx])
		if descending {
			return c > 0
		}
		return c < 0
	})
	return &Records{Columns: r.Columns, Rows: rows}, nil
}

// compareValues returns negative if a < b, zero if equal, positive if a > b.
// Values of one column share a type, except for nils and unparseable fields
// in numeric columns, which compare after numbers as strings.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			return cmp.Compare(av, bv)
		}
		if _, ok := b.(string); ok {
			return -1
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
		if _, ok := b.(string); ok {
			return -1
		}
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
		return 1
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
