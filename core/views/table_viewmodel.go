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

package views

import (
	"github.com/google/safehtml"

	"github.com/google/tablekit/core/query"
	"github.com/google/tablekit/core/tables"
)

// TableViewModel contains the data from the table formatted for template consumption
type TableViewModel struct {
	Caption string
	Attrs   HTMLAttrs
	Headers []HeaderCell
	Rows    []RowView
	Footer  []CellView
}

// HeaderCell is one <th>
type HeaderCell struct {
	Name  string
	Title string
	Attrs HTMLAttrs

	Sortable  bool
	SortURL   safehtml.URL
	SortState string // "asc", "desc" or empty when not the sort column
}

// RowView is one body <tr>
type RowView struct {
	ID    int
	Attrs HTMLAttrs
	Cells []CellView
}

// CellView is one <td>
type CellView struct {
	Column  string
	Title   string
	Attrs   HTMLAttrs
	HasLink bool
	Link    safehtml.URL
}

// BuildTableViewModel reads a table through its accessors and lays it out for
// the template. Body cells follow header order, with columns missing from the
// header appended in row order. Cells and footer entries without a title are
// omitted.
func BuildTableViewModel(t *tables.Table, q *query.Query) TableViewModel {
	config := t.Config()
	header := t.Header()
	caption, _ := config.Title()

	vm := TableViewModel{
		Caption: caption,
		Attrs:   htmlAttrs(config),
		Headers: make([]HeaderCell, 0, header.Len()),
	}

	header.Range(func(name string, head tables.Attrs) bool {
		title, _ := head.Title()
		cell := HeaderCell{Name: name, Title: title, Attrs: htmlAttrs(head)}
		if t.Sortable() && q != nil {
			key := name
			if sortName, ok := head.String(tables.KeySortName); ok && sortName != "" {
				key = sortName
			}
			cell.Sortable = true
			cell.SortURL = q.WithSort(key)
			switch {
			case t.SortBy() == key:
				cell.SortState = t.SortMode()
			case t.SortBy() == "" && q.IsSortedBy(key):
				// Tables built without sort fields follow the URL.
				cell.SortState = q.Mode
			}
		}
		vm.Headers = append(vm.Headers, cell)
		return true
	})

	params := t.RowParams()
	columnOrder := header.Keys()
	t.Body().Range(func(id int, row *tables.Row) bool {
		rv := RowView{ID: id, Attrs: htmlAttrs(params[id])}
		seen := make(map[string]bool, row.Len())
		add := func(column string) {
			seen[column] = true
			data, ok := row.Get(column)
			if !ok {
				return
			}
			if cell, ok := buildCell(column, data); ok {
				rv.Cells = append(rv.Cells, cell)
			}
		}
		for _, column := range columnOrder {
			add(column)
		}
		for _, column := range row.Keys() {
			if !seen[column] {
				add(column)
			}
		}
		vm.Rows = append(vm.Rows, rv)
		return true
	})

	t.Footer().Range(func(name string, foot tables.Attrs) bool {
		title, ok := foot.Title()
		if ok {
			vm.Footer = append(vm.Footer, CellView{Column: name, Title: title, Attrs: htmlAttrs(foot)})
		}
		return true
	})

	return vm
}

func buildCell(column string, data tables.Attrs) (CellView, bool) {
	title, ok := data.Title()
	if !ok {
		return CellView{}, false
	}
	cell := CellView{Column: column, Title: title, Attrs: htmlAttrs(data)}
	cell.Link, cell.HasLink = linkURL(data[tables.KeyLink])
	return cell, true
}
