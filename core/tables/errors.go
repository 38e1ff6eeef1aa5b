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

package tables

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid table configuration")

// Section names reported by ConfigurationError.
const (
	SectionConfig = "config"
	SectionHeader = "header"
	SectionFooter = "footer"
	SectionBody   = "body"
)

// ConfigurationError reports a header, footer, cell or config value with an
// unsupported shape. It is a programming mistake, not a transient failure.
type ConfigurationError struct {
	Section string
	Column  string // column name or config key
	RowID   int
	HasRow  bool
	Value   any
}

func (e *ConfigurationError) Error() string {
	if e.HasRow {
		return fmt.Sprintf("%s: unsupported %s value %#v for column %q in row %d",
			ErrConfiguration, e.Section, e.Value, e.Column, e.RowID)
	}
	return fmt.Sprintf("%s: unsupported %s value %#v for %q",
		ErrConfiguration, e.Section, e.Value, e.Column)
}

// Is makes errors.Is(err, ErrConfiguration) succeed.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
