// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shutter

import "sync"

// tableKey identifies one BuildTable call.
type tableKey struct {
	min, max          float64
	includeThirdStops bool
}

// TableCache memoizes [BuildTable] results. The sliding window
// recomputes its rows on every scroll update and the sequencer runs on
// every settings change; both read the same bounded table, so the
// cache saves rebuilding it for an unchanged range. Safe for
// concurrent use. The zero value is ready to use.
type TableCache struct {
	mutex  sync.Mutex
	tables map[tableKey]Table
}

// Get returns the bounded table for the range, building it on first
// use. The returned Table shares its backing array with the cache;
// treat it as read-only or call [Table.Oriented] for a private copy.
func (cache *TableCache) Get(min, max float64, includeThirdStops bool) Table {
	key := tableKey{min: min, max: max, includeThirdStops: includeThirdStops}

	cache.mutex.Lock()
	defer cache.mutex.Unlock()

	if table, ok := cache.tables[key]; ok {
		return table
	}
	if cache.tables == nil {
		cache.tables = make(map[tableKey]Table)
	}
	table := BuildTable(min, max, includeThirdStops)
	cache.tables[key] = table
	return table
}

// Len returns the number of cached tables.
func (cache *TableCache) Len() int {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	return len(cache.tables)
}

// Reset drops every cached table.
func (cache *TableCache) Reset() {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	cache.tables = nil
}
