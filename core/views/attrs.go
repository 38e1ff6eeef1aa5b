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

	"github.com/google/tablekit/core/pagination"
	"github.com/google/tablekit/core/query"
	"github.com/google/tablekit/core/tables"
)

// HTMLAttrs holds the element attributes the templates know how to emit.
// Empty fields are omitted from the markup. The id attribute is not among
// them: safehtml only accepts compile-time identifiers there.
type HTMLAttrs struct {
	Class   string
	Width   string
	Align   string
	Colspan string
	Rowspan string
	Border  string
}

// htmlAttrs picks the renderable attributes out of an attribute bag. Keys
// the templates cannot emit are dropped.
func htmlAttrs(a tables.Attrs) HTMLAttrs {
	get := func(key string) string {
		s, _ := a.String(key)
		return s
	}
	width := get(tables.KeyWidth)
	if width == "auto" {
		width = ""
	}
	return HTMLAttrs{
		Class:   get(tables.KeyClass),
		Width:   width,
		Align:   get("align"),
		Colspan: get("colspan"),
		Rowspan: get("rowspan"),
		Border:  get("border"),
	}
}

// linkURL converts a cell link to a safe URL. Strings are sanitized; other
// types are not links.
func linkURL(v any) (safehtml.URL, bool) {
	switch l := v.(type) {
	case safehtml.URL:
		return l, true
	case string:
		if l == "" {
			return safehtml.URL{}, false
		}
		return safehtml.URLSanitized(l), true
	}
	return safehtml.URL{}, false
}

// PageViewModel is everything the page template renders.
type PageViewModel struct {
	Title      string
	Table      TableViewModel
	Pagination PaginationViewModel
}

// BuildPageViewModel combines a table and its paginator into one page.
func BuildPageViewModel(title string, t *tables.Table, p *pagination.Paginator, q *query.Query) PageViewModel {
	return PageViewModel{
		Title:      title,
		Table:      BuildTableViewModel(t, q),
		Pagination: BuildPaginationViewModel(p, q),
	}
}
