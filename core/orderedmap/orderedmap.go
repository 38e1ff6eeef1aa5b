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

// Package orderedmap provides a map that remembers key insertion order.
package orderedmap

// Map is a map that preserves the order of insertion.
// Re-setting an existing key updates its value in place without moving it.
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates a new ordered map
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0),
		values: make(map[K]V),
	}
}

// Set adds or updates a key-value pair
func (om *Map[K, V]) Set(key K, value V) *Map[K, V] {
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
	return om
}

// Get retrieves a value by key
func (om *Map[K, V]) Get(key K) (V, bool) {
	val, exists := om.values[key]
	return val, exists
}

// Keys returns all keys in insertion order
func (om *Map[K, V]) Keys() []K {
	result := make([]K, len(om.keys))
	copy(result, om.keys)
	return result
}

// Len returns the number of key-value pairs. A nil map has length 0.
func (om *Map[K, V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.keys)
}

// Range iterates over the map in insertion order.
// If f returns false, iteration stops.
func (om *Map[K, V]) Range(f func(key K, value V) bool) {
	if om == nil {
		return
	}
	for _, k := range om.keys {
		if !f(k, om.values[k]) {
			break
		}
	}
}

// Has checks if a key exists
func (om *Map[K, V]) Has(key K) bool {
	_, exists := om.values[key]
	return exists
}

// CloneFunc returns a copy of the map with every value passed through clone.
func (om *Map[K, V]) CloneFunc(clone func(V) V) *Map[K, V] {
	out := &Map[K, V]{
		keys:   make([]K, len(om.keys)),
		values: make(map[K]V, len(om.values)),
	}
	copy(out.keys, om.keys)
	for k, v := range om.values {
		out.values[k] = clone(v)
	}
	return out
}
