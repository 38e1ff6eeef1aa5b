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

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tablekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8097", cfg.Addr)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, 10, cfg.Pagination.MaxVisiblePages)
	assert.True(t, cfg.Table.Sortable)
	assert.Equal(t, ',', cfg.Data.DelimiterRune())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: "127.0.0.1:9000"
table:
  title: Invoices
  sortable: false
pagination:
  page_size: 25
data:
  csv: invoices.csv
  delimiter: ";"
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "Invoices", cfg.Table.Title)
	assert.False(t, cfg.Table.Sortable)
	assert.Equal(t, "1", cfg.Table.Border)
	assert.Equal(t, 25, cfg.Pagination.PageSize)
	assert.Equal(t, 10, cfg.Pagination.MaxVisiblePages)
	assert.Equal(t, "invoices.csv", cfg.Data.CSV)
	assert.Equal(t, ';', cfg.Data.DelimiterRune())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	_, err = Load(writeConfig(t, "addr: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, "pagination:\n  page_size: 0\n  max_visible_pages: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page_size")
	assert.Contains(t, err.Error(), "max_visible_pages")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }, "addr"},
		{"page size too large", func(c *Config) { c.Pagination.PageSize = 5000 }, "page_size"},
		{"long delimiter", func(c *Config) { c.Data.Delimiter = "||" }, "delimiter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Str("component", "test").Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, zerolog.InfoLevel, NewLogger(&buf, "bogus").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger(&buf, "").GetLevel())
}
