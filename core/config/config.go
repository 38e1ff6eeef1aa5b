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

// Package config holds the settings of the tablekit server and CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/google/tablekit/core/pagination"
	"github.com/google/tablekit/core/query"
)

// Config is the root of a tablekit YAML file.
type Config struct {
	Addr       string           `yaml:"addr"`
	Table      TableConfig      `yaml:"table"`
	Pagination PaginationConfig `yaml:"pagination"`
	Data       DataConfig       `yaml:"data"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TableConfig sets the attributes of the rendered table.
type TableConfig struct {
	Title    string `yaml:"title"`
	Class    string `yaml:"class"`
	Border   string `yaml:"border"`
	Sortable bool   `yaml:"sortable"`
}

// PaginationConfig sets the page size and the pager window.
type PaginationConfig struct {
	PageSize        int    `yaml:"page_size"`
	MaxVisiblePages int    `yaml:"max_visible_pages"`
	Class           string `yaml:"class"`
	Language        string `yaml:"language"`
}

// DataConfig points at the CSV file to serve. An empty path serves the
// embedded demo data.
type DataConfig struct {
	CSV       string `yaml:"csv"`
	Delimiter string `yaml:"delimiter"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr: ":8097",
		Table: TableConfig{
			Title:    "Clients",
			Border:   "1",
			Sortable: true,
		},
		Pagination: PaginationConfig{
			PageSize:        query.DefaultPageSize,
			MaxVisiblePages: pagination.DefaultMaxVisiblePages,
			Class:           "pagination",
			Language:        "en",
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.Pagination.PageSize <= 0 || c.Pagination.PageSize > query.MaxPageSize {
		errs = append(errs, fmt.Errorf("pagination.page_size must be in [1, %d], got %d",
			query.MaxPageSize, c.Pagination.PageSize))
	}
	if c.Pagination.MaxVisiblePages <= 0 {
		errs = append(errs, fmt.Errorf("pagination.max_visible_pages must be positive, got %d",
			c.Pagination.MaxVisiblePages))
	}
	if d := []rune(c.Data.Delimiter); len(d) > 1 {
		errs = append(errs, fmt.Errorf("data.delimiter must be a single character, got %q", c.Data.Delimiter))
	}
	return errors.Join(errs...)
}

// DelimiterRune returns the CSV field separator, defaulting to a comma.
func (d DataConfig) DelimiterRune() rune {
	if r := []rune(d.Delimiter); len(r) == 1 {
		return r[0]
	}
	return ','
}
