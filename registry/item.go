/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/keys"
	"github.com/suparena/propconfig/value"
)

// Item holds the current value of one key. The variant of its value is fixed
// when the item is built; reads and writes of any other type fail.
//
// The zero Item has no value and reports value.TypeUndefined.
type Item struct {
	key keys.Key
	val value.Value
}

// NewItem builds an item whose type is inferred from the Go type of v.
func NewItem[T value.Scalar](k keys.Key, v T) *Item {
	return &Item{key: k, val: value.From(v)}
}

// NewItemFromValue builds an item holding v. A nil v yields an undefined item.
func NewItemFromValue(k keys.Key, v value.Value) *Item {
	return &Item{key: k, val: v}
}

// Key returns the key the item is bound to.
func (it *Item) Key() keys.Key {
	return it.key
}

// Type returns the declared type of the item.
func (it *Item) Type() value.TypeTag {
	return value.TypeOf(it.val)
}

// Value returns the current value.
func (it *Item) Value() value.Value {
	return it.val
}

// Set replaces the value, provided v has the item's declared type.
func (it *Item) Set(v value.Value) error {
	if v == nil || v.Type() != it.Type() {
		return it.mismatch(value.TypeOf(v))
	}
	it.val = v
	return nil
}

func (it *Item) mismatch(got value.TypeTag) error {
	return errors.NewTypeMismatchError(it.key.String(), it.Type().String(), got.String())
}

func (it *Item) clone() *Item {
	c := *it
	return &c
}

// Read returns the item's value as T. There is no coercion between Integer
// and Double.
func Read[T value.Scalar](it *Item) (T, error) {
	var zero T
	want := value.TagOf[T]()
	if it.Type() != want {
		return zero, it.mismatch(want)
	}
	out, ok := value.Interface(it.val).(T)
	if !ok {
		return zero, it.mismatch(want)
	}
	return out, nil
}

// Write stores v, leaving the declared type unchanged.
func Write[T value.Scalar](it *Item, v T) error {
	return it.Set(value.From(v))
}
