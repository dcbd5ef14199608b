/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"

	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/keys"
	"github.com/suparena/propconfig/value"
)

// Registry owns one Item per key. It does no locking of its own.
type Registry struct {
	items map[keys.Key]*Item
}

// New returns a registry holding the catalog default for every key.
func New() *Registry {
	r := &Registry{
		items: make(map[keys.Key]*Item, keys.Count()),
	}
	r.setDefaults()
	return r
}

func (r *Registry) setDefaults() {
	for _, k := range keys.All() {
		def, _ := keys.Default(k)
		r.AddItem(NewItemFromValue(k, def))
	}
}

// AddItem inserts item if its key is not present yet and reports whether it
// did. An existing entry is never replaced.
func (r *Registry) AddItem(item *Item) bool {
	if item == nil {
		return false
	}
	if _, exists := r.items[item.key]; exists {
		return false
	}
	r.items[item.key] = item
	return true
}

// Item returns the item for k.
func (r *Registry) Item(k keys.Key) (*Item, error) {
	it, ok := r.items[k]
	if !ok {
		return nil, errors.NewUnknownKeyError(k.String())
	}
	return it, nil
}

// Items exposes the live key to item mapping.
func (r *Registry) Items() map[keys.Key]*Item {
	return r.items
}

// Keys returns the registered keys in ascending order.
func (r *Registry) Keys() []keys.Key {
	out := make([]keys.Key, 0, len(r.items))
	for k := range r.items {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len returns the number of items.
func (r *Registry) Len() int {
	return len(r.items)
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	c := &Registry{items: make(map[keys.Key]*Item, len(r.items))}
	for k, it := range r.items {
		c.items[k] = it.clone()
	}
	return c
}

// GetBool returns the value of a Bool key.
func (r *Registry) GetBool(k keys.Key) (bool, error) {
	return get[bool](r, k)
}

// GetDouble returns the value of a Double key.
func (r *Registry) GetDouble(k keys.Key) (float64, error) {
	return get[float64](r, k)
}

// GetInt returns the value of an Integer key.
func (r *Registry) GetInt(k keys.Key) (int, error) {
	return get[int](r, k)
}

// GetString returns the value of a String key.
func (r *Registry) GetString(k keys.Key) (string, error) {
	return get[string](r, k)
}

// SetBool sets the value of a Bool key.
func (r *Registry) SetBool(k keys.Key, v bool) error {
	return set(r, k, v)
}

// SetDouble sets the value of a Double key.
func (r *Registry) SetDouble(k keys.Key, v float64) error {
	return set(r, k, v)
}

// SetInt sets the value of an Integer key.
func (r *Registry) SetInt(k keys.Key, v int) error {
	return set(r, k, v)
}

// SetString sets the value of a String key.
func (r *Registry) SetString(k keys.Key, v string) error {
	return set(r, k, v)
}

func get[T value.Scalar](r *Registry, k keys.Key) (T, error) {
	it, err := r.Item(k)
	if err != nil {
		var zero T
		return zero, err
	}
	return Read[T](it)
}

func set[T value.Scalar](r *Registry, k keys.Key, v T) error {
	it, err := r.Item(k)
	if err != nil {
		return err
	}
	return Write(it, v)
}
