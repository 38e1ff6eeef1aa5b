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

package server

import (
	"strconv"

	"github.com/google/tablekit/core/config"
	"github.com/google/tablekit/core/csvimport"
	"github.com/google/tablekit/core/orderedmap"
	"github.com/google/tablekit/core/query"
	"github.com/google/tablekit/core/tables"
)

const footerTotalKey = "_total"

// BuildTable lays out a slice of records as a table. offset is the position of
// the first record in the full data set and becomes the first row id; total
// is the size of the full data set, shown in the footer.
func BuildTable(records *csvimport.Records, cfg config.TableConfig, q *query.Query, offset, total int) (*tables.Table, error) {
	attrs := tables.Attrs{"sortable": cfg.Sortable}
	if cfg.Title != "" {
		attrs[tables.KeyTitle] = cfg.Title
	}
	if cfg.Class != "" {
		attrs[tables.KeyClass] = cfg.Class
	}
	if cfg.Border != "" {
		attrs["border"] = cfg.Border
	}
	if q != nil && q.Sort != "" {
		attrs["sort_by"] = q.Sort
		attrs["sort_mode"] = q.Mode
	}

	t, err := tables.New(attrs)
	if err != nil {
		return nil, err
	}

	header := orderedmap.New[string, any]()
	for _, col := range records.Columns {
		h := tables.Attrs{tables.KeyTitle: col.DisplayName}
		if numeric(col) {
			h["align"] = "right"
		}
		header.Set(col.Name, h)
	}
	if err := t.SetHeader(header); err != nil {
		return nil, err
	}

	for i := range records.Rows {
		row := records.Row(i)
		cells := make(map[string]any, len(row))
		for _, col := range records.Columns {
			v := row[col.Name]
			if v == nil {
				v = ""
			}
			if numeric(col) {
				cells[col.Name] = tables.Attrs{tables.KeyTitle: v, "align": "right"}
			} else {
				cells[col.Name] = v
			}
		}
		class := "odd"
		if (offset+i)%2 == 1 {
			class = "even"
		}
		if err := t.AddRowAt(offset+i, cells, tables.Attrs{tables.KeyClass: class}); err != nil {
			return nil, err
		}
	}

	if err := t.SetFooter(footer(records.Columns, total)); err != nil {
		return nil, err
	}
	return t, nil
}

// footer spans all but the last column with a right aligned label and puts
// the record count in the last one.
func footer(columns []csvimport.Column, total int) *orderedmap.Map[string, any] {
	f := orderedmap.New[string, any]()
	if len(columns) > 1 {
		f.Set(columns[0].Name, tables.Attrs{
			tables.KeyTitle: "Total",
			"align":         "right",
			"colspan":       strconv.Itoa(len(columns) - 1),
		})
	}
	return f.Set(footerTotalKey, tables.Attrs{tables.KeyTitle: strconv.Itoa(total) + " records"})
}

func numeric(col csvimport.Column) bool {
	return col.Type == csvimport.ColumnTypeInt64 || col.Type == csvimport.ColumnTypeFloat64
}
