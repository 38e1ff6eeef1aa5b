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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tablekit/core/orderedmap"
)

func columns(kv ...any) *orderedmap.Map[string, any] {
	m := orderedmap.New[string, any]()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}
	return m
}

func TestNewExtractsSortFields(t *testing.T) {
	table, err := New(Attrs{
		"title":     "Clients",
		"border":    1,
		"sortable":  true,
		"sort_by":   "name",
		"sort_mode": "desc",
	})
	require.NoError(t, err)

	assert.True(t, table.Sortable())
	assert.Equal(t, "name", table.SortBy())
	assert.Equal(t, "desc", table.SortMode())
	assert.Equal(t, Attrs{
		"title":  "Clients",
		"border": 1,
		"width":  "auto",
		"class":  nil,
		"id":     nil,
	}, table.Config())
}

func TestNewRejectsBadSortFields(t *testing.T) {
	_, err := New(Attrs{"sortable": "yes"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	_, err = New(Attrs{"sort_by": 3})
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, SectionConfig, cfgErr.Section)
	assert.Equal(t, "sort_by", cfgErr.Column)
}

func TestNewTitled(t *testing.T) {
	table := NewTitled("Report")
	title, ok := table.Config().Title()
	assert.True(t, ok)
	assert.Equal(t, "Report", title)
	assert.False(t, table.Sortable())
}

func TestHeaderAndFirstRow(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.SetHeader(columns("a", "A", "b", "B")))
	require.NoError(t, table.AddRow(map[string]any{"a": 1, "b": 2}, nil))

	assert.Equal(t, []string{"a", "b"}, table.Header().Keys())

	row, ok := table.Body().Get(0)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, row.Keys())
	a, _ := row.Get("a")
	b, _ := row.Get("b")
	assert.Equal(t, Attrs{"title": 1, "class": nil, "link": nil}, a)
	assert.Equal(t, Attrs{"title": 2, "class": nil, "link": nil}, b)
}

func TestHeaderDefaultsAndRedeclare(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.SetHeader(columns(
		"id", Attrs{"title": "Code", "width": "15%"},
		"name", "Name",
		"client", map[string]any{"title": "Client", "sort_name": "internal_code"},
	)))
	require.NoError(t, table.Head("id", "Identifier"))
	require.NoError(t, table.Head("age", map[string]string{"title": "Age"}))

	header := table.Header()
	assert.Equal(t, []string{"id", "name", "client", "age"}, header.Keys())

	id, _ := header.Get("id")
	assert.Equal(t, Attrs{"title": "Identifier", "width": "auto", "class": nil, "sort_name": nil}, id)
	client, _ := header.Get("client")
	assert.Equal(t, "internal_code", client["sort_name"])
	assert.Equal(t, "auto", client["width"])
}

func TestHeaderRejectsInvalidShape(t *testing.T) {
	table := NewTitled("t")
	err := table.SetHeader(columns("ok", "Fine", "bad", 42))

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, SectionHeader, cfgErr.Section)
	assert.Equal(t, "bad", cfgErr.Column)
	assert.Equal(t, 42, cfgErr.Value)
	assert.Equal(t, 0, table.Header().Len(), "no column applied when one is invalid")

	assert.Error(t, table.Head("nil", nil))
}

func TestFooter(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.SetFooter(columns(
		"title", Attrs{"title": "Total", "align": "right", "colspan": "2"},
		"total", "2 people",
		"empty", nil,
	)))

	footer := table.Footer()
	assert.Equal(t, []string{"title", "total", "empty"}, footer.Keys())
	total, _ := footer.Get("total")
	assert.Equal(t, Attrs{"title": "2 people", "width": "auto", "class": nil}, total)

	empty, _ := footer.Get("empty")
	assert.True(t, empty.Has("title"))
	_, ok := empty.Title()
	assert.False(t, ok, "nil title means no footer cell")

	title, _ := footer.Get("title")
	assert.Equal(t, "right", title["align"])

	err := table.Foot("bad", []string{"x"})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestExplicitRowIDBypassesPointer(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.AddRowAt(99, map[string]any{"a": "x"}, Attrs{"class": "warning"}))
	assert.Equal(t, 1, table.Pointer(), "pointer advances even for explicit ids")

	table.Reset()
	require.NoError(t, table.SetCellAt(99, "a", "x"))
	require.NoError(t, table.SetCell("a", "y"))
	require.NoError(t, table.SetCell("b", "z"))
	assert.Equal(t, 0, table.Pointer(), "SetCell never advances the pointer")

	require.NoError(t, table.AddRow(map[string]any{"a": "next"}, nil))
	assert.Equal(t, 1, table.Pointer())

	body := table.Body()
	assert.Equal(t, []int{99, 0}, body.Keys())
	row0, _ := body.Get(0)
	assert.Equal(t, []string{"a", "b"}, row0.Keys())
	a, _ := row0.Get("a")
	assert.Equal(t, "next", a["title"])
}

func TestAddRowAtAdvancesPointer(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.AddRowAt(99, map[string]any{"a": 1}, nil))
	assert.Equal(t, 1, table.Pointer())

	// The pointer counts completed rows, so the next implicit row lands at 1
	// and not at 0.
	require.NoError(t, table.AddRow(map[string]any{"a": 2}, nil))

	body := table.Body()
	assert.Equal(t, []int{99, 1}, body.Keys())
	row, ok := body.Get(1)
	require.True(t, ok)
	a, _ := row.Get("a")
	assert.Equal(t, 2, a["title"])
}

func TestNextAndCells(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.SetCell("id", 30))
	require.NoError(t, table.SetCell("name", "Carlos"))
	table.Next()
	require.NoError(t, table.SetCell("id", 31))
	require.NoError(t, table.SetCell("client", Attrs{"title": "0021518", "link": "/clients/21518"}))

	body := table.Body()
	assert.Equal(t, []int{0, 1}, body.Keys())
	row1, _ := body.Get(1)
	client, _ := row1.Get("client")
	assert.Equal(t, Attrs{"title": "0021518", "class": nil, "link": "/clients/21518"}, client)
}

func TestCellCoercion(t *testing.T) {
	type score float32
	tests := []struct {
		name  string
		value any
		want  Attrs
	}{
		{"string", "x", Attrs{"title": "x", "class": nil, "link": nil}},
		{"int", 7, Attrs{"title": 7, "class": nil, "link": nil}},
		{"named float", score(1.5), Attrs{"title": score(1.5), "class": nil, "link": nil}},
		{"bool", true, Attrs{"title": true, "class": nil, "link": nil}},
		{"nil", nil, Attrs{"title": nil, "class": nil, "link": nil}},
		{"map overrides defaults", Attrs{"class": "red"}, Attrs{"title": "", "class": "red", "link": nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTitled("t")
			require.NoError(t, table.SetCell("c", tt.value))
			row, _ := table.Body().Get(0)
			got, _ := row.Get("c")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidCellLeavesTableUntouched(t *testing.T) {
	table := NewTitled("t")
	err := table.AddRow(map[string]any{"a": "fine", "b": struct{}{}}, Attrs{"class": "x"})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, SectionBody, cfgErr.Section)
	assert.True(t, cfgErr.HasRow)
	assert.Equal(t, 0, cfgErr.RowID)
	assert.Equal(t, "b", cfgErr.Column)
	assert.Contains(t, err.Error(), "row 0")

	assert.Equal(t, 0, table.Body().Len())
	assert.Empty(t, table.RowParams())
	assert.Equal(t, 0, table.Pointer())

	assert.Error(t, table.SetCellAt(5, "a", []int{1}))
}

func TestRowParams(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.AddRow(map[string]any{"a": 1}, nil))
	require.NoError(t, table.AddRow(map[string]any{"a": 2}, Attrs{"class": "warning", "id": "row75"}))

	params := table.RowParams()
	assert.Equal(t, Attrs{}, params[0])
	assert.Equal(t, "warning", params[1]["class"])

	table.SetRowParams(Attrs{"class": "pending"})
	table.SetRowParamsAt(1, Attrs{"id": "replaced"})

	params = table.RowParams()
	assert.Equal(t, Attrs{"class": "pending"}, params[2])
	assert.Equal(t, Attrs{"id": "replaced"}, params[1], "params are overwritten, not merged")
}

func TestAddRows(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.SetHeader(columns("id", "Code", "name", "Name")))
	require.NoError(t, table.AddRows([]map[string]any{
		{"id": 30, "name": "Carlos"},
		{"_row_param": Attrs{"class": "vip"}, "id": 31, "name": "Sergio"},
	}))

	body := table.Body()
	assert.Equal(t, []int{0, 1}, body.Keys())
	row1, _ := body.Get(1)
	assert.Equal(t, []string{"id", "name"}, row1.Keys())
	assert.Equal(t, "vip", table.RowParams()[1]["class"])
	assert.Equal(t, 2, table.Pointer())

	err := table.AddRows([]map[string]any{{"_row_param": "oops"}})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAddRowsIsAtomic(t *testing.T) {
	table := NewTitled("t")
	err := table.AddRows([]map[string]any{
		{"id": 30, "name": "Carlos"},
		{"id": 31, "name": []string{"not", "a", "cell"}},
	})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, 1, cfgErr.RowID)
	assert.Equal(t, "name", cfgErr.Column)

	assert.Equal(t, 0, table.Body().Len())
	assert.Empty(t, table.RowParams())
	assert.Equal(t, 0, table.Pointer())
}

func TestCellOrderFollowsHeaderThenName(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.SetHeader(columns("z", "Z", "a", "A")))
	require.NoError(t, table.AddRow(map[string]any{"extra2": 1, "a": 1, "extra1": 1, "z": 1}, nil))

	row, _ := table.Body().Get(0)
	assert.Equal(t, []string{"z", "a", "extra1", "extra2"}, row.Keys())
}

func TestAccessorsReturnCopies(t *testing.T) {
	table := NewTitled("t")
	require.NoError(t, table.Head("a", "A"))
	require.NoError(t, table.AddRow(map[string]any{"a": 1}, Attrs{"class": "x"}))

	header := table.Header()
	head, _ := header.Get("a")
	head["title"] = "mutated"
	header.Set("b", Attrs{})

	row, _ := table.Body().Get(0)
	cell, _ := row.Get("a")
	cell["title"] = "mutated"

	table.RowParams()[0]["class"] = "mutated"
	table.Config()["title"] = "mutated"

	h, _ := table.Header().Get("a")
	assert.Equal(t, "A", h["title"])
	assert.Equal(t, 1, table.Header().Len())
	r, _ := table.Body().Get(0)
	c, _ := r.Get("a")
	assert.Equal(t, 1, c["title"])
	assert.Equal(t, "x", table.RowParams()[0]["class"])
	assert.Equal(t, "t", table.Config()["title"])
}

func TestReset(t *testing.T) {
	table, err := New(Attrs{"title": "t", "sortable": true, "sort_by": "a"})
	require.NoError(t, err)
	require.NoError(t, table.Head("a", "A"))
	require.NoError(t, table.Foot("a", "sum"))
	require.NoError(t, table.AddRow(map[string]any{"a": 1}, nil))
	require.NoError(t, table.AddRow(map[string]any{"a": 2}, nil))

	table.Reset()

	assert.Empty(t, table.Config())
	assert.Equal(t, 0, table.Header().Len())
	assert.Equal(t, 0, table.Footer().Len())
	assert.Equal(t, 0, table.Body().Len())
	assert.Empty(t, table.RowParams())
	assert.NotNil(t, table.RowParams())
	assert.False(t, table.Sortable())
	assert.Equal(t, 0, table.Pointer())

	require.NoError(t, table.AddRow(map[string]any{"a": 3}, nil))
	assert.Equal(t, []int{0}, table.Body().Keys())
}

func TestMerge(t *testing.T) {
	got := Merge(Attrs{"a": 1, "b": 2}, Attrs{"b": nil, "c": 3})
	assert.Equal(t, Attrs{"a": 1, "b": nil, "c": 3}, got)
}
