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

// Package pagination computes page-number navigation for a result set split
// into fixed-size pages. Visible page numbers are grouped into blocks of
// MaxVisiblePages so the window only shifts when the current page crosses a
// block boundary.
package pagination

import (
	"errors"
	"fmt"
)

// DefaultMaxVisiblePages is the width of the page-number window.
const DefaultMaxVisiblePages = 10

// ErrInvalidArgument is matched by every *InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid pagination argument")

// InvalidArgumentError reports a Paginator input outside its domain.
type InvalidArgumentError struct {
	Name  string
	Value int
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s must be positive, got %d", ErrInvalidArgument, e.Name, e.Value)
}

// Is makes errors.Is(err, ErrInvalidArgument) succeed.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Config holds the attributes used to style the pagination container.
type Config struct {
	ID              string
	Class           string
	MaxVisiblePages int
}

// Option customizes a Paginator.
type Option func(*Config)

// WithMaxVisiblePages sets the width of the page-number window.
func WithMaxVisiblePages(n int) Option {
	return func(c *Config) { c.MaxVisiblePages = n }
}

// WithID sets the container id attribute.
func WithID(id string) Option {
	return func(c *Config) { c.ID = id }
}

// WithClass sets the container class attribute.
func WithClass(class string) Option {
	return func(c *Config) { c.Class = class }
}

// Paginator derives navigation state from a requested page, a total result
// count and a page size. It is immutable; every method is a pure function of
// the constructor inputs, so a Paginator may be shared between goroutines.
type Paginator struct {
	requested    int
	totalResults int
	pageSize     int
	config       Config
}

// New creates a Paginator. requested may be out of range and is clamped.
// pageSize and the window width must be positive and totalResults must not
// be negative.
func New(requested, totalResults, pageSize int, opts ...Option) (*Paginator, error) {
	cfg := Config{MaxVisiblePages: DefaultMaxVisiblePages}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case pageSize <= 0:
		return nil, &InvalidArgumentError{Name: "page size", Value: pageSize}
	case cfg.MaxVisiblePages <= 0:
		return nil, &InvalidArgumentError{Name: "max visible pages", Value: cfg.MaxVisiblePages}
	case totalResults < 0:
		return nil, &InvalidArgumentError{Name: "total results", Value: totalResults}
	}

	return &Paginator{
		requested:    requested,
		totalResults: totalResults,
		pageSize:     pageSize,
		config:       cfg,
	}, nil
}

// Config returns the container attributes.
func (p *Paginator) Config() Config {
	return p.config
}

// TotalResults returns the number of results being paginated.
func (p *Paginator) TotalResults() int {
	return p.totalResults
}

// PageCount returns ceil(totalResults / pageSize).
func (p *Paginator) PageCount() int {
	pages := p.totalResults / p.pageSize
	if p.totalResults%p.pageSize > 0 {
		pages++
	}
	return pages
}

// CurrentPage returns the requested page clamped to [1, PageCount]. With no
// results it is 1.
func (p *Paginator) CurrentPage() int {
	count := p.PageCount()
	current := count
	switch {
	case p.requested <= 0:
		current = 1
	case p.requested < count:
		current = p.requested
	}
	if current < 1 {
		return 1
	}
	return current
}

// LoadedResultsCount returns how many results the current page holds. An
// exactly full last page counts as pageSize.
func (p *Paginator) LoadedResultsCount() int {
	if p.totalResults == 0 {
		return 0
	}
	if p.CurrentPage() == p.PageCount() {
		if rem := p.totalResults % p.pageSize; rem != 0 {
			return rem
		}
	}
	return p.pageSize
}

// NextPage returns the page after the current one, if any.
func (p *Paginator) NextPage() (int, bool) {
	current := p.CurrentPage()
	if current < p.PageCount() {
		return current + 1, true
	}
	return 0, false
}

// PreviousPage returns the page before the current one, if any.
func (p *Paginator) PreviousPage() (int, bool) {
	current := p.CurrentPage()
	if current > 1 {
		return current - 1, true
	}
	return 0, false
}

// NextPageWindow returns the jump target one window forward, if there is a
// full window ahead.
func (p *Paginator) NextPageWindow() (int, bool) {
	current := p.CurrentPage()
	width := p.config.MaxVisiblePages
	if current < p.PageCount()-width {
		return current + width, true
	}
	return 0, false
}

// PreviousPageWindow returns the jump target one window back.
func (p *Paginator) PreviousPageWindow() (int, bool) {
	current := p.CurrentPage()
	width := p.config.MaxVisiblePages
	if current >= 2*width {
		return current - width, true
	}
	return 0, false
}

// ShouldShowFirstPageLink reports whether page 1 is outside the window.
func (p *Paginator) ShouldShowFirstPageLink() bool {
	return p.CurrentPage() >= p.config.MaxVisiblePages
}

// ShouldShowLastPageLink reports whether the last page is outside the window.
func (p *Paginator) ShouldShowLastPageLink() bool {
	count := p.PageCount()
	return count > p.config.MaxVisiblePages && p.WindowEnd() < count
}

func (p *Paginator) windowBase() int {
	width := p.config.MaxVisiblePages
	return p.CurrentPage() / width * width
}

// WindowStart returns the first page number of the visible window.
func (p *Paginator) WindowStart() int {
	if base := p.windowBase(); base != 0 {
		return base
	}
	return 1
}

// WindowEnd returns the last page number of the visible window, inclusive.
func (p *Paginator) WindowEnd() int {
	end := p.config.MaxVisiblePages
	if base := p.windowBase(); base != 0 {
		end = base + p.config.MaxVisiblePages
	}
	return min(end, p.PageCount())
}

// Pages returns the page numbers of the visible window in order.
func (p *Paginator) Pages() []int {
	start, end := p.WindowStart(), p.WindowEnd()
	if end < start {
		return []int{}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ResultOffset returns the zero-based index of the first result on the
// current page.
func (p *Paginator) ResultOffset() int {
	current := p.CurrentPage()
	if current > 1 {
		return (current - 1) * p.pageSize
	}
	return 0
}

// ResultLimit returns the number of results to take from ResultOffset.
func (p *Paginator) ResultLimit() int {
	return p.pageSize
}

// Slice returns the bounds of the current page within a collection of n
// results, clamped to [0, n].
func (p *Paginator) Slice(n int) (lo, hi int) {
	lo = min(p.ResultOffset(), n)
	hi = min(lo+p.ResultLimit(), n)
	return lo, hi
}
