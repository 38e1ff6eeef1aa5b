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

package rendering

import (
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"

	"github.com/google/tablekit/core/views"
)

//go:embed templates/*
var templateFS embed.FS

// Template names, one per file under templates/.
const (
	pageTemplate       = "page.html"
	tableTemplate      = "table.html"
	paginationTemplate = "pagination.html"
)

// TableRenderer handles rendering of table and pagination view models to HTML
type TableRenderer struct {
	templates *template.Template
}

// NewTableRenderer creates a new table renderer
func NewTableRenderer() (*TableRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)

	templates, err := template.New(pageTemplate).ParseFS(trustedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &TableRenderer{templates: templates}, nil
}

// Render renders a full page to the provided writer
func (r *TableRenderer) Render(w io.Writer, vm views.PageViewModel) error {
	return r.templates.ExecuteTemplate(w, pageTemplate, vm)
}

// RenderTable renders only the <table> element
func (r *TableRenderer) RenderTable(w io.Writer, vm views.TableViewModel) error {
	return r.templates.ExecuteTemplate(w, tableTemplate, vm)
}

// RenderPagination renders only the navigation list
func (r *TableRenderer) RenderPagination(w io.Writer, vm views.PaginationViewModel) error {
	return r.templates.ExecuteTemplate(w, paginationTemplate, vm)
}
