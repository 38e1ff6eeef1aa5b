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
	"reflect"
	"slices"

	"github.com/google/tablekit/core/orderedmap"
)

// Row is the ordered set of cells of one table row, keyed by column name.
type Row = orderedmap.Map[string, Attrs]

// Table accumulates the header, body, footer and row parameters of an HTML
// table. Rows are addressed either by an explicit id or by an internal pointer
// that advances each time a row is completed.
//
// A Table is not safe for concurrent mutation.
type Table struct {
	config    Attrs
	header    *orderedmap.Map[string, Attrs]
	footer    *orderedmap.Map[string, Attrs]
	body      *orderedmap.Map[int, *Row]
	rowParams map[int]Attrs
	pointer   int

	sortable bool
	sortBy   string
	sortMode string
}

// New creates a table from its configuration attributes. The sortable,
// sort_by and sort_mode keys are extracted from config and exposed through
// Sortable, SortBy and SortMode; everything else is merged over the default
// table attributes.
func New(config Attrs) (*Table, error) {
	t := &Table{}
	t.Reset()

	cfg := config.Clone()
	if v, ok := cfg[keySortable]; ok && v != nil {
		b, isBool := v.(bool)
		if !isBool {
			return nil, &ConfigurationError{Section: SectionConfig, Column: keySortable, Value: v}
		}
		t.sortable = b
	}
	for key, dst := range map[string]*string{keySortBy: &t.sortBy, keySortMode: &t.sortMode} {
		v, ok := cfg[key]
		if !ok || v == nil {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return nil, &ConfigurationError{Section: SectionConfig, Column: key, Value: v}
		}
		*dst = s
	}
	delete(cfg, keySortable)
	delete(cfg, keySortBy)
	delete(cfg, keySortMode)

	t.config = Merge(configDefaults(), cfg)
	return t, nil
}

// NewTitled creates a table whose only configuration is its title.
func NewTitled(title string) *Table {
	t, _ := New(Attrs{KeyTitle: title})
	return t
}

// SetHeader declares header columns in iteration order. Values are either a
// title string or an attribute map. Nothing is applied if any value is invalid.
func (t *Table) SetHeader(columns *orderedmap.Map[string, any]) error {
	resolved, err := coerceColumns(columns, SectionHeader)
	if err != nil {
		return err
	}
	resolved.Range(func(name string, head Attrs) bool {
		t.header.Set(name, Merge(headerDefaults(), head))
		return true
	})
	return nil
}

// Head declares a single header column. Re-declaring a column replaces its
// attributes but keeps its position.
func (t *Table) Head(name string, value any) error {
	return t.SetHeader(orderedmap.New[string, any]().Set(name, value))
}

// SetFooter declares footer cells. A nil value declares a column with no
// footer cell.
func (t *Table) SetFooter(columns *orderedmap.Map[string, any]) error {
	resolved, err := coerceColumns(columns, SectionFooter)
	if err != nil {
		return err
	}
	resolved.Range(func(name string, foot Attrs) bool {
		t.footer.Set(name, Merge(footerDefaults(), foot))
		return true
	})
	return nil
}

// Foot declares a single footer cell.
func (t *Table) Foot(name string, value any) error {
	return t.SetFooter(orderedmap.New[string, any]().Set(name, value))
}

// AddRow adds a complete row at the current pointer and advances the pointer.
// Cells are written in header order, then any remaining columns by name.
// If a cell is invalid the table is left untouched.
func (t *Table) AddRow(row map[string]any, params Attrs) error {
	return t.addRow(nil, row, params)
}

// AddRowAt adds a complete row at id. The pointer still advances.
func (t *Table) AddRowAt(id int, row map[string]any, params Attrs) error {
	return t.addRow(&id, row, params)
}

// AddRows adds rows at ids 0..len(rows)-1. A "_row_param" entry holding an
// attribute map is used as that row's parameters instead of a cell. Every
// row is checked before any is written, so an invalid row leaves the table
// untouched.
func (t *Table) AddRows(rows []map[string]any) error {
	prepared := make([]preparedRow, len(rows))
	for id, row := range rows {
		cells := make(map[string]any, len(row))
		var params Attrs
		for col, v := range row {
			if col != keyRowParam {
				cells[col] = v
				continue
			}
			if v == nil {
				continue
			}
			p, ok := coerceMap(v)
			if !ok {
				return &ConfigurationError{Section: SectionBody, Column: col, RowID: id, HasRow: true, Value: v}
			}
			params = p
		}
		pr, err := t.prepareRow(id, cells, params)
		if err != nil {
			return err
		}
		prepared[id] = pr
	}

	for _, pr := range prepared {
		t.commitRow(pr)
	}
	return nil
}

// preparedRow is a row whose cells have all been coerced.
type preparedRow struct {
	id      int
	columns []string
	cells   []Attrs
	params  Attrs
}

func (t *Table) addRow(explicit *int, row map[string]any, params Attrs) error {
	pr, err := t.prepareRow(t.resolveRowID(explicit), row, params)
	if err != nil {
		return err
	}
	t.commitRow(pr)
	return nil
}

func (t *Table) prepareRow(id int, row map[string]any, params Attrs) (preparedRow, error) {
	columns := t.orderColumns(row)
	cells := make([]Attrs, len(columns))
	for i, col := range columns {
		cell, err := coerceCell(id, col, row[col])
		if err != nil {
			return preparedRow{}, err
		}
		cells[i] = cell
	}
	return preparedRow{id: id, columns: columns, cells: cells, params: params.Clone()}, nil
}

// commitRow writes a prepared row and advances the pointer.
func (t *Table) commitRow(pr preparedRow) {
	t.rowParams[pr.id] = pr.params
	for i, col := range pr.columns {
		t.putCell(pr.id, col, pr.cells[i])
	}
	t.pointer++
}

// SetCell sets one cell in the row at the pointer. The pointer does not move;
// call Next to start a new row.
func (t *Table) SetCell(column string, value any) error {
	return t.setCell(nil, column, value)
}

// SetCellAt sets one cell in the row with the given id.
func (t *Table) SetCellAt(id int, column string, value any) error {
	return t.setCell(&id, column, value)
}

func (t *Table) setCell(explicit *int, column string, value any) error {
	id := t.resolveRowID(explicit)
	cell, err := coerceCell(id, column, value)
	if err != nil {
		return err
	}
	t.putCell(id, column, cell)
	return nil
}

func (t *Table) putCell(id int, column string, cell Attrs) {
	row, ok := t.body.Get(id)
	if !ok {
		row = orderedmap.New[string, Attrs]()
		t.body.Set(id, row)
	}
	row.Set(column, Merge(cellDefaults(), cell))
}

// SetRowParams replaces the parameters of the row at the pointer.
func (t *Table) SetRowParams(params Attrs) {
	t.rowParams[t.resolveRowID(nil)] = params.Clone()
}

// SetRowParamsAt replaces the parameters of the row with the given id.
func (t *Table) SetRowParamsAt(id int, params Attrs) {
	t.rowParams[t.resolveRowID(&id)] = params.Clone()
}

// Next advances the row pointer.
func (t *Table) Next() {
	t.pointer++
}

// Pointer returns the id the next implicitly addressed row will use.
func (t *Table) Pointer() int {
	return t.pointer
}

// Reset clears all content and configuration and rewinds the pointer.
func (t *Table) Reset() {
	*t = Table{
		config:    Attrs{},
		header:    orderedmap.New[string, Attrs](),
		footer:    orderedmap.New[string, Attrs](),
		body:      orderedmap.New[int, *Row](),
		rowParams: make(map[int]Attrs),
	}
}

func (t *Table) resolveRowID(explicit *int) int {
	if explicit != nil {
		return *explicit
	}
	return t.pointer
}

func (t *Table) orderColumns(row map[string]any) []string {
	columns := make([]string, 0, len(row))
	for _, name := range t.header.Keys() {
		if _, ok := row[name]; ok {
			columns = append(columns, name)
		}
	}
	var rest []string
	for name := range row {
		if !t.header.Has(name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(columns, rest...)
}

// Config returns a copy of the table attributes.
func (t *Table) Config() Attrs {
	return t.config.Clone()
}

// Header returns a copy of the header columns in display order.
func (t *Table) Header() *orderedmap.Map[string, Attrs] {
	return t.header.CloneFunc(Attrs.Clone)
}

// Footer returns a copy of the footer cells.
func (t *Table) Footer() *orderedmap.Map[string, Attrs] {
	return t.footer.CloneFunc(Attrs.Clone)
}

// Body returns a copy of all rows keyed by row id, in order of first use.
func (t *Table) Body() *orderedmap.Map[int, *Row] {
	return t.body.CloneFunc(func(r *Row) *Row {
		return r.CloneFunc(Attrs.Clone)
	})
}

// RowParams returns a copy of the per-row parameters.
func (t *Table) RowParams() map[int]Attrs {
	out := make(map[int]Attrs, len(t.rowParams))
	for id, p := range t.rowParams {
		out[id] = p.Clone()
	}
	return out
}

// Sortable reports whether header columns should render as sort links.
func (t *Table) Sortable() bool { return t.sortable }

// SortBy returns the column the table is currently sorted by.
func (t *Table) SortBy() string { return t.sortBy }

// SortMode returns the current sort direction, "asc" or "desc".
func (t *Table) SortMode() string { return t.sortMode }

func coerceColumns(columns *orderedmap.Map[string, any], section string) (*orderedmap.Map[string, Attrs], error) {
	out := orderedmap.New[string, Attrs]()
	var err error
	columns.Range(func(name string, v any) bool {
		switch {
		case v == nil && section == SectionFooter:
			out.Set(name, Attrs{KeyTitle: nil})
			return true
		case isString(v):
			out.Set(name, Attrs{KeyTitle: v})
			return true
		}
		attrs, ok := coerceMap(v)
		if !ok {
			err = &ConfigurationError{Section: section, Column: name, Value: v}
			return false
		}
		out.Set(name, attrs)
		return true
	})
	return out, err
}

func coerceCell(id int, column string, v any) (Attrs, error) {
	if v == nil {
		return Attrs{KeyTitle: nil}, nil
	}
	if isScalar(v) {
		return Attrs{KeyTitle: v}, nil
	}
	if attrs, ok := coerceMap(v); ok {
		return attrs, nil
	}
	return nil, &ConfigurationError{Section: SectionBody, Column: column, RowID: id, HasRow: true, Value: v}
}

func coerceMap(v any) (Attrs, bool) {
	switch m := v.(type) {
	case Attrs:
		return m.Clone(), true
	case map[string]any:
		return Attrs(m).Clone(), true
	case map[string]string:
		out := make(Attrs, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isScalar(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
