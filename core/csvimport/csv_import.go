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

// Package csvimport loads CSV data into typed records that can be sorted and
// paged before being laid out in a table.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ColumnType specifies the data type for a column
type ColumnType int

const (
	// ColumnTypeAuto auto-detects type from data (default)
	ColumnTypeAuto ColumnType = iota
	// ColumnTypeString forces string type
	ColumnTypeString
	// ColumnTypeInt64 forces int64 type
	ColumnTypeInt64
	// ColumnTypeFloat64 forces float64 type
	ColumnTypeFloat64
)

// ColumnSource defines source metadata for how a column is imported
type ColumnSource struct {
	// Name is the column name (defaults to header name if not specified)
	Name string
	// DisplayName is the header title (defaults to the column name)
	DisplayName string
	// Type specifies the data type for this column (default: auto-detect)
	Type ColumnType
}

// ImportOptions configures CSV import behavior
type ImportOptions struct {
	// HasHeader indicates whether the first row contains column headers
	HasHeader bool
	// Delimiter is the field delimiter (defaults to comma)
	Delimiter rune
	// ColumnSources provides configuration for specific columns by header name
	ColumnSources map[string]ColumnSource
	// SampleSize is the number of rows to sample for type detection (default: 100)
	SampleSize int
}

// Import errors.
var (
	ErrEmpty    = errors.New("CSV file is empty")
	ErrNoRows   = errors.New("CSV file has no data rows")
	ErrNoColumn = errors.New("unknown column")
)

// DefaultOptions returns default import options
func DefaultOptions() ImportOptions {
	return ImportOptions{
		HasHeader:     true,
		Delimiter:     ',',
		ColumnSources: make(map[string]ColumnSource),
		SampleSize:    100,
	}
}

// Column describes one imported column.
type Column struct {
	Name        string
	DisplayName string
	Type        ColumnType
}

// Records is an imported CSV file. Values are string, int64 or float64
// according to the column type; empty numeric fields are nil.
type Records struct {
	Columns []Column
	Rows    [][]any
}

// ImportFromFile imports a CSV file
func ImportFromFile(filepath string, options ImportOptions) (*Records, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ImportFromReader(file, options)
}

// ImportFromReader imports CSV data from an io.Reader
func ImportFromReader(reader io.Reader, options ImportOptions) (*Records, error) {
	csvReader := csv.NewReader(reader)
	if options.Delimiter != 0 {
		csvReader.Comma = options.Delimiter
	}
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmpty
	}

	var headers []string
	var dataRows [][]string

	if options.HasHeader {
		headers = records[0]
		dataRows = records[1:]
	} else {
		// Generate column names if no header
		numCols := len(records[0])
		headers = make([]string, numCols)
		for i := 0; i < numCols; i++ {
			headers[i] = fmt.Sprintf("column_%d", i+1)
		}
		dataRows = records
	}

	if len(dataRows) == 0 {
		return nil, ErrNoRows
	}

	sampleSize := options.SampleSize
	if sampleSize <= 0 {
		sampleSize = 100
	}

	out := &Records{Columns: make([]Column, len(headers))}
	for i, header := range headers {
		header = strings.TrimSpace(header)
		source := options.ColumnSources[header]
		col := Column{Name: header, DisplayName: header, Type: source.Type}
		if source.Name != "" {
			col.Name = source.Name
		}
		if source.DisplayName != "" {
			col.DisplayName = source.DisplayName
		} else {
			col.DisplayName = col.Name
		}
		if col.Type == ColumnTypeAuto {
			col.Type = detectColumnType(dataRows, i, sampleSize)
		}
		out.Columns[i] = col
	}

	out.Rows = make([][]any, len(dataRows))
	for r, row := range dataRows {
		values := make([]any, len(headers))
		for i, col := range out.Columns {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			values[i] = parseValue(value, col.Type)
		}
		out.Rows[r] = values
	}

	return out, nil
}

// detectColumnType samples a column and picks the narrowest numeric type all
// non-empty samples parse as, falling back to string.
func detectColumnType(rows [][]string, col, sampleSize int) ColumnType {
	isInt, isFloat, seen := true, true, false
	for r := 0; r < len(rows) && r < sampleSize; r++ {
		if col >= len(rows[r]) {
			continue
		}
		value := strings.TrimSpace(rows[r][col])
		if value == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			isFloat = false
		}
	}
	switch {
	case !seen:
		return ColumnTypeString
	case isInt:
		return ColumnTypeInt64
	case isFloat:
		return ColumnTypeFloat64
	}
	return ColumnTypeString
}

func parseValue(value string, t ColumnType) any {
	switch t {
	case ColumnTypeInt64:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		if value == "" {
			return nil
		}
	case ColumnTypeFloat64:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		if value == "" {
			return nil
		}
	}
	return value
}

// Len returns the number of data rows.
func (r *Records) Len() int {
	return len(r.Rows)
}

// ColumnIndex returns the position of the named column.
func (r *Records) ColumnIndex(name string) (int, bool) {
	for i, col := range r.Columns {
		if col.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Row returns row i keyed by column name.
func (r *Records) Row(i int) map[string]any {
	row := make(map[string]any, len(r.Columns))
	for c, col := range r.Columns {
		row[col.Name] = r.Rows[i][c]
	}
	return row
}

// Slice returns the rows in [lo, hi) sharing the column metadata.
func (r *Records) Slice(lo, hi int) *Records {
	return &Records{Columns: r.Columns, Rows: r.Rows[lo:hi]}
}
