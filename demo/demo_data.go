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

// Package demo provides the sample client list served when no CSV file is
// configured, and the two-row example table.
package demo

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/google/tablekit/core/csvimport"
	"github.com/google/tablekit/core/orderedmap"
	"github.com/google/tablekit/core/tables"
)

//go:embed data/clients.csv
var clientsCSV string

// ClientsOptions returns the import options for the embedded client list.
func ClientsOptions() csvimport.ImportOptions {
	options := csvimport.DefaultOptions()
	options.ColumnSources["id"] = csvimport.ColumnSource{DisplayName: "Identifier"}
	options.ColumnSources["name"] = csvimport.ColumnSource{DisplayName: "Name"}
	options.ColumnSources["years"] = csvimport.ColumnSource{DisplayName: "Age"}
	options.ColumnSources["city"] = csvimport.ColumnSource{DisplayName: "City"}
	return options
}

// Clients imports the embedded client list.
func Clients() (*csvimport.Records, error) {
	records, err := csvimport.ImportFromReader(strings.NewReader(clientsCSV), ClientsOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to import clients CSV: %w", err)
	}
	return records, nil
}

// ExampleTable builds a bordered table of two clients with a right aligned
// total spanning the first two columns.
func ExampleTable() (*tables.Table, error) {
	t, err := tables.New(tables.Attrs{"border": 1})
	if err != nil {
		return nil, err
	}

	header := orderedmap.New[string, any]().
		Set("id", "Identifier").
		Set("name", "Name").
		Set("years", "Age")
	if err := t.SetHeader(header); err != nil {
		return nil, err
	}

	footer := orderedmap.New[string, any]().
		Set("title", tables.Attrs{"title": "Total", "align": "right", "colspan": "2"}).
		Set("total", tables.Attrs{"title": "2 clients"})
	if err := t.SetFooter(footer); err != nil {
		return nil, err
	}

	if err := t.AddRow(map[string]any{"id": 15, "name": "Carlos", "years": "25"}, nil); err != nil {
		return nil, err
	}
	if err := t.AddRow(map[string]any{"id": 24, "name": "Sergio", "years": "47"}, nil); err != nil {
		return nil, err
	}
	return t, nil
}
