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

package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/safehtml"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Defaults and limits for page-based navigation.
const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

// Validation errors.
var (
	ErrInvalidPageSize = fmt.Errorf("page size must be between 1 and %d", MaxPageSize)
	ErrInvalidSortMode = errors.New("sort mode must be 'asc' or 'desc'")
)

// Query represents the parsed state of a paginated table URL
type Query struct {
	// Base path (e.g., "/")
	Path string

	Page     int    // Requested page, 1-based; out of range values are clamped later
	PageSize int    // Results per page
	Sort     string // Sort key, empty for natural order
	Mode     string // Sort direction: "asc" or "desc"

	// defaultSize is the page size used when "size" is missing or
	// unparseable. Links omit size when it matches.
	defaultSize int
}

// NewQuery creates a Query from a URL. Unparseable numbers fall back to the
// defaults; Validate reports values that parse but are out of range.
func NewQuery(u *url.URL) *Query {
	return NewQueryWithPageSize(u, DefaultPageSize)
}

// NewQueryWithPageSize is NewQuery with pageSize as the default page size.
// A non-positive pageSize means DefaultPageSize.
func NewQueryWithPageSize(u *url.URL, pageSize int) *Query {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	state := &Query{
		Path:        u.Path,
		Page:        1,
		PageSize:    pageSize,
		Mode:        SortAsc,
		defaultSize: pageSize,
	}

	q := u.Query()

	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			state.Page = page
		}
	}

	if sizeStr := q.Get("size"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil {
			state.PageSize = size
		}
	}

	state.Sort = strings.TrimSpace(q.Get("sort"))
	if mode := q.Get("mode"); mode != "" {
		state.Mode = strings.ToLower(strings.TrimSpace(mode))
	}

	return state
}

// Validate checks that the page size and sort mode are usable.
func (s *Query) Validate() error {
	if s.PageSize < 1 || s.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, s.PageSize)
	}
	if s.Mode != SortAsc && s.Mode != SortDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortMode, s.Mode)
	}
	return nil
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(s.Page))
	if s.PageSize != s.defaultPageSize() {
		q.Set("size", strconv.Itoa(s.PageSize))
	}
	if s.Sort != "" {
		q.Set("sort", s.Sort)
		q.Set("mode", s.Mode)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Query) defaultPageSize() int {
	if s.defaultSize > 0 {
		return s.defaultSize
	}
	return DefaultPageSize
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// WithPage returns a URL pointing at another page with the same sorting
func (s *Query) WithPage(page int) safehtml.URL {
	newState := s.Clone()
	newState.Page = page
	return newState.ToSafeURL()
}

// WithSort returns a URL sorted by key. Sorting by the current key flips the
// direction; a new key starts ascending. Either way navigation restarts at
// page 1.
func (s *Query) WithSort(key string) safehtml.URL {
	newState := s.Clone()
	newState.Page = 1
	newState.Mode = SortAsc
	if s.Sort == key && s.Mode == SortAsc {
		newState.Mode = SortDesc
	}
	newState.Sort = key
	return newState.ToSafeURL()
}

// IsSortedBy reports whether the query sorts by key.
func (s *Query) IsSortedBy(key string) bool {
	return s.Sort != "" && s.Sort == key
}
