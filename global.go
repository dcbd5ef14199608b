/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package propconfig

import (
	"github.com/suparena/propconfig/codec"
	"github.com/suparena/propconfig/keys"
)

// GetBool returns the Bool setting k of Default().
func GetBool(k keys.Key) (bool, error) { return Default().GetBool(k) }

// GetDouble returns the Double setting k of Default().
func GetDouble(k keys.Key) (float64, error) { return Default().GetDouble(k) }

// GetString returns the String setting k of Default().
func GetString(k keys.Key) (string, error) { return Default().GetString(k) }

// GetJSON returns Default() as a JSON document.
func GetJSON() (codec.Document, error) { return Default().GetJSON() }

// GetJSONString returns Default() as compact JSON text.
func GetJSONString() (string, error) { return Default().GetJSONString() }

// SetBool changes the Bool setting k of Default().
func SetBool(k keys.Key, v bool) error { return Default().SetBool(k, v) }

// SetDouble changes the Double setting k of Default().
func SetDouble(k keys.Key, v float64) error { return Default().SetDouble(k, v) }

// SetString changes the String setting k of Default().
func SetString(k keys.Key, v string) error { return Default().SetString(k, v) }

// SetJSON applies doc to Default(), stopping at the first failing member.
func SetJSON(doc codec.Document) error { return Default().SetJSON(doc) }

// SetJSONString applies JSON text to Default(), stopping at the first failing member.
func SetJSONString(text string) error { return Default().SetJSONString(text) }

// ApplyJSONString applies JSON text to Default() completely or not at all.
func ApplyJSONString(text string) error { return Default().ApplyJSONString(text) }

// Reset restores every setting of Default() to its default.
func Reset() { Default().Reset() }

// KeyToString returns the catalog name of k.
func KeyToString(k keys.Key) (string, error) {
	return keys.Name(k)
}

// KeyDescription returns the description of k.
func KeyDescription(k keys.Key) (string, error) {
	return keys.Description(k)
}

// KeyDescriptionByName returns the description of the key named name.
func KeyDescriptionByName(name string) (string, error) {
	return keys.DescriptionByName(name)
}
