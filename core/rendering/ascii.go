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
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/tablekit/core/views"
)

// ToASCII returns the table as text with ASCII borders. Cells aligned right
// in HTML are right aligned here too, and colspans cover the widths of the
// columns they span.
func ToASCII(vm views.TableViewModel) string {
	var sb strings.Builder

	header := make([]views.CellView, len(vm.Headers))
	for i, h := range vm.Headers {
		header[i] = views.CellView{Column: h.Name, Title: h.Title, Attrs: h.Attrs}
	}
	lines := [][]views.CellView{header}
	for _, row := range vm.Rows {
		lines = append(lines, row.Cells)
	}
	if len(vm.Footer) > 0 {
		lines = append(lines, vm.Footer)
	}

	colWidths := calculateColumnWidths(lines)
	if len(colWidths) == 0 {
		return ""
	}

	border := borderLine(colWidths)
	if vm.Caption != "" {
		sb.WriteString(vm.Caption)
		sb.WriteString("\n")
	}
	sb.WriteString(border)
	if len(header) > 0 {
		writeLine(&sb, header, colWidths)
		sb.WriteString(border)
	}
	for _, row := range vm.Rows {
		writeLine(&sb, row.Cells, colWidths)
	}
	if len(vm.Footer) > 0 {
		if len(vm.Rows) > 0 {
			sb.WriteString(border)
		}
		writeLine(&sb, vm.Footer, colWidths)
	}
	sb.WriteString(border)
	return sb.String()
}

// RenderASCII writes ToASCII output to w.
func (r *TableRenderer) RenderASCII(w io.Writer, vm views.TableViewModel) error {
	_, err := io.WriteString(w, ToASCII(vm))
	return err
}

func span(c views.CellView) int {
	n, err := strconv.Atoi(c.Attrs.Colspan)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// calculateColumnWidths calculates the width needed for each column.
func calculateColumnWidths(lines [][]views.CellView) []int {
	var widths []int
	for _, cells := range lines {
		col := 0
		for _, c := range cells {
			n := span(c)
			for len(widths) < col+n {
				// Set minimum width to 1
				widths = append(widths, 1)
			}
			if w := utf8.RuneCountInString(c.Title); n == 1 && w > widths[col] {
				widths[col] = w
			}
			col += n
		}
	}
	// Widen the last spanned column when a spanning cell does not fit
	for _, cells := range lines {
		col := 0
		for _, c := range cells {
			n := span(c)
			if n > 1 {
				have := n - 1
				for _, w := range widths[col : col+n] {
					have += w
				}
				if need := utf8.RuneCountInString(c.Title); need > have {
					widths[col+n-1] += need - have
				}
			}
			col += n
		}
	}
	return widths
}

func borderLine(widths []int) string {
	var sb strings.Builder
	for _, w := range widths {
		sb.WriteString("|")
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("|\n")
	return sb.String()
}

func writeLine(sb *strings.Builder, cells []views.CellView, widths []int) {
	col := 0
	for _, c := range cells {
		n := span(c)
		w := n - 1
		for _, cw := range widths[col : col+n] {
			w += cw
		}
		sb.WriteString("|")
		if c.Attrs.Align == "right" {
			fmt.Fprintf(sb, "%*s", w, c.Title)
		} else {
			fmt.Fprintf(sb, "%-*s", w, c.Title)
		}
		col += n
	}
	// Pad short rows
	for ; col < len(widths); col++ {
		sb.WriteString("|")
		sb.WriteString(strings.Repeat(" ", widths[col]))
	}
	sb.WriteString("|\n")
}
