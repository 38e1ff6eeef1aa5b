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

// Package export converts tables and paginators into protobuf Struct values
// for JSON clients. Lists are used wherever order matters.
package export

import (
	"fmt"
	"reflect"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/tablekit/core/pagination"
	"github.com/google/tablekit/core/tables"
)

// Table converts a table's configuration, header, footer and body.
func Table(t *tables.Table) (*structpb.Struct, error) {
	header := []any{}
	t.Header().Range(func(name string, attrs tables.Attrs) bool {
		header = append(header, map[string]any{"name": name, "attrs": attrsValue(attrs)})
		return true
	})

	footer := []any{}
	t.Footer().Range(func(name string, attrs tables.Attrs) bool {
		footer = append(footer, map[string]any{"name": name, "attrs": attrsValue(attrs)})
		return true
	})

	params := t.RowParams()
	rows := []any{}
	t.Body().Range(func(id int, row *tables.Row) bool {
		cells := []any{}
		row.Range(func(column string, attrs tables.Attrs) bool {
			cells = append(cells, map[string]any{"column": column, "attrs": attrsValue(attrs)})
			return true
		})
		rows = append(rows, map[string]any{
			"id":     id,
			"params": attrsValue(params[id]),
			"cells":  cells,
		})
		return true
	})

	s, err := structpb.NewStruct(map[string]any{
		"config":    attrsValue(t.Config()),
		"sortable":  t.Sortable(),
		"sort_by":   t.SortBy(),
		"sort_mode": t.SortMode(),
		"header":    header,
		"footer":    footer,
		"rows":      rows,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to convert table: %w", err)
	}
	return s, nil
}

// Pagination converts the navigation state of a paginator. Absent
// neighbours are null.
func Pagination(p *pagination.Paginator) (*structpb.Struct, error) {
	optional := func(page int, ok bool) any {
		if !ok {
			return nil
		}
		return page
	}
	pages := []any{}
	for _, page := range p.Pages() {
		pages = append(pages, page)
	}
	cfg := p.Config()

	s, err := structpb.NewStruct(map[string]any{
		"id":                   cfg.ID,
		"class":                cfg.Class,
		"max_visible_pages":    cfg.MaxVisiblePages,
		"total_results":        p.TotalResults(),
		"page_count":           p.PageCount(),
		"current_page":         p.CurrentPage(),
		"loaded_results":       p.LoadedResultsCount(),
		"result_offset":        p.ResultOffset(),
		"result_limit":         p.ResultLimit(),
		"next_page":            optional(p.NextPage()),
		"previous_page":        optional(p.PreviousPage()),
		"next_page_window":     optional(p.NextPageWindow()),
		"previous_page_window": optional(p.PreviousPageWindow()),
		"show_first_page":      p.ShouldShowFirstPageLink(),
		"show_last_page":       p.ShouldShowLastPageLink(),
		"pages":                pages,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to convert pagination: %w", err)
	}
	return s, nil
}

// Page combines a table and its paginator under "table" and "pagination".
func Page(t *tables.Table, p *pagination.Paginator) (*structpb.Struct, error) {
	table, err := Table(t)
	if err != nil {
		return nil, err
	}
	pager, err := Pagination(p)
	if err != nil {
		return nil, err
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"table":      structpb.NewStructValue(table),
		"pagination": structpb.NewStructValue(pager),
	}}, nil
}

// MarshalJSON encodes s with protojson.
func MarshalJSON(s *structpb.Struct, indent bool) ([]byte, error) {
	opts := protojson.MarshalOptions{}
	if indent {
		opts.Multiline = true
		opts.Indent = "  "
	}
	return opts.Marshal(s)
}

func attrsValue(a tables.Attrs) map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = normalize(v)
	}
	return out
}

// normalize maps attribute values onto the types structpb accepts.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, string, bool, int, int32, int64, uint, uint32, uint64, float32, float64:
		return x
	case tables.Attrs:
		return attrsValue(x)
	case map[string]any:
		return attrsValue(x)
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = normalize(rv.Index(i).Interface())
		}
		return items
	}
	return fmt.Sprint(v)
}
