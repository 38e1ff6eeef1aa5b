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
	"strconv"

	"github.com/google/safehtml"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/google/tablekit/core/pagination"
	"github.com/google/tablekit/core/query"
)

// Classes applied to the navigation links around the page window.
const (
	ClassFirstPage     = "first"
	ClassPreviousPages = "previous_pages"
	ClassNextPages     = "next_pages"
	ClassLastPage      = "last_page"
	ClassActive        = "active"
)

// PaginationViewModel is the navigation list below a table
type PaginationViewModel struct {
	Class   string
	Links   []PageLink
	Summary string
}

// PageLink is one entry of the navigation list
type PageLink struct {
	Label  string
	Page   int
	URL    safehtml.URL
	Class  string
	Active bool
}

// BuildPaginationViewModel lays out the first page, previous window, visible
// pages, next window and last page links in that order. A nil query links
// into "/".
func BuildPaginationViewModel(p *pagination.Paginator, q *query.Query) PaginationViewModel {
	return BuildPaginationViewModelForLanguage(p, q, language.English)
}

// BuildPaginationViewModelForLanguage is BuildPaginationViewModel with the
// summary numbers formatted for tag.
func BuildPaginationViewModelForLanguage(p *pagination.Paginator, q *query.Query, tag language.Tag) PaginationViewModel {
	cfg := p.Config()
	vm := PaginationViewModel{Class: cfg.Class}
	if q == nil {
		q = defaultQuery()
	}

	link := func(label string, page int, class string) PageLink {
		return PageLink{Label: label, Page: page, URL: q.WithPage(page), Class: class}
	}

	if p.ShouldShowFirstPageLink() {
		vm.Links = append(vm.Links, link("1", 1, ClassFirstPage))
		if prev, ok := p.PreviousPageWindow(); ok {
			vm.Links = append(vm.Links, link("...", prev, ClassPreviousPages))
		}
	}

	current := p.CurrentPage()
	for _, page := range p.Pages() {
		l := link(strconv.Itoa(page), page, "")
		if page == current {
			l.Class = ClassActive
			l.Active = true
		}
		vm.Links = append(vm.Links, l)
	}

	if p.ShouldShowLastPageLink() {
		if next, ok := p.NextPageWindow(); ok {
			vm.Links = append(vm.Links, link("...", next, ClassNextPages))
		}
		last := p.PageCount()
		vm.Links = append(vm.Links, link(strconv.Itoa(last), last, ClassLastPage))
	}

	vm.Summary = summary(p, tag)
	return vm
}

// defaultQuery is the first page of "/" in natural order.
func defaultQuery() *query.Query {
	return &query.Query{Path: "/", Page: 1, PageSize: query.DefaultPageSize, Mode: query.SortAsc}
}

func summary(p *pagination.Paginator, tag language.Tag) string {
	printer := message.NewPrinter(tag)
	total := p.TotalResults()
	if total == 0 {
		return printer.Sprintf("No results")
	}
	first := p.ResultOffset() + 1
	last := p.ResultOffset() + p.LoadedResultsCount()
	return printer.Sprintf("Showing %d–%d of %d", first, last, total)
}
