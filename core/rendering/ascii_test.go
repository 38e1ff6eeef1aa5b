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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/tablekit/core/tables"
	"github.com/google/tablekit/core/views"
)

func TestToASCII(t *testing.T) {
	vm := buildPage(t, tables.Attrs{"title": "Clients"}, "/").Table

	want := "" +
		"Clients\n" +
		"|----------|-------------|\n" +
		"|Identifier|Name         |\n" +
		"|----------|-------------|\n" +
		"|15        |<b>Carlos</b>|\n" +
		"|24        |Sergio       |\n" +
		"|----------|-------------|\n" +
		"|                   Total|\n" +
		"|----------|-------------|\n"
	assert.Equal(t, want, ToASCII(vm))
}

func TestToASCIIWideSpan(t *testing.T) {
	vm := views.TableViewModel{
		Headers: []views.HeaderCell{{Name: "a", Title: "a"}, {Name: "b", Title: "b"}},
		Rows:    []views.RowView{{Cells: []views.CellView{{Title: "1"}}}},
		Footer:  []views.CellView{{Title: "a long total", Attrs: views.HTMLAttrs{Colspan: "2"}}},
	}

	want := "" +
		"|-|----------|\n" +
		"|a|b         |\n" +
		"|-|----------|\n" +
		"|1|          |\n" +
		"|-|----------|\n" +
		"|a long total|\n" +
		"|-|----------|\n"
	assert.Equal(t, want, ToASCII(vm))
}

func TestToASCIIEmpty(t *testing.T) {
	assert.Equal(t, "", ToASCII(views.TableViewModel{}))
}

func TestRenderASCII(t *testing.T) {
	r, err := NewTableRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.RenderASCII(&buf, buildPage(t, nil, "/").Table))
	assert.Contains(t, buf.String(), "|24        |Sergio       |\n")
}
