/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"reflect"
	"sync"
)

var (
	indexMaps = make(map[reflect.Type]map[string]string)
	mu        sync.RWMutex
)

// RegisterIndexMap associates T with its key templates, for example
// {"PK": "PROPCONFIG", "SK": "PROFILE#{Profile}"}. A later call for the same
// type replaces the earlier map.
func RegisterIndexMap[T any](idxMap map[string]string) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	cp := make(map[string]string, len(idxMap))
	for k, v := range idxMap {
		cp[k] = v
	}

	mu.Lock()
	defer mu.Unlock()
	indexMaps[t] = cp
}

// IndexMapFor retrieves the index map for type T, if any.
func IndexMapFor[T any]() (map[string]string, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()

	mu.RLock()
	defer mu.RUnlock()
	m, ok := indexMaps[t]
	return m, ok
}
