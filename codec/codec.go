/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/keys"
	"github.com/suparena/propconfig/registry"
	"github.com/suparena/propconfig/value"
)

// Document is a decoded JSON object keyed by catalog name. Encode fills it with
// bool, int, float64 and string values.
type Document map[string]any

// Encode returns one member per registry item.
func Encode(r *registry.Registry) (Document, error) {
	doc := make(Document, r.Len())
	items := r.Items()
	for _, k := range r.Keys() {
		if err := EncodeItem(doc, items[k]); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// EncodeItem adds the member for it to doc.
func EncodeItem(doc Document, it *registry.Item) error {
	if it.Type() == value.TypeUndefined {
		return errors.NewInvalidStateError(it.Key().String(), "encode")
	}
	name, err := keys.Name(it.Key())
	if err != nil {
		return err
	}
	switch v := it.Value().(type) {
	case value.Bool:
		doc[name] = bool(v)
	case value.Double:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.NewInvalidStateError(name, "encode non-finite double")
		}
		doc[name] = f
	case value.Integer:
		doc[name] = int(v)
	case value.String:
		doc[name] = string(v)
	default:
		return errors.NewInvalidStateError(name, "encode")
	}
	return nil
}

// EncodeString returns the registry as compact JSON text in catalog order.
func EncodeString(r *registry.Registry) (string, error) {
	doc, err := Encode(r)
	if err != nil {
		return "", err
	}
	b, err := Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncodeIndent returns the registry as indented JSON text.
func EncodeIndent(r *registry.Registry, indent string) ([]byte, error) {
	doc, err := Encode(r)
	if err != nil {
		return nil, err
	}
	b, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(b, &pretty.Options{Width: 80, Indent: indent}), nil
}

// Marshal serializes doc. Catalog names come first in catalog order, any other
// names follow sorted. Doubles always carry a fraction or exponent so that the
// text decodes back to the same type.
func Marshal(doc Document) ([]byte, error) {
	buf := []byte("{}")
	for _, name := range memberOrder(doc) {
		var err error
		switch v := doc[name].(type) {
		case string:
			buf, err = sjson.SetBytes(buf, escapePath(name), v)
		default:
			var raw []byte
			raw, err = rawJSON(name, v)
			if err == nil {
				buf, err = sjson.SetRawBytes(buf, escapePath(name), raw)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to set member %q: %w", name, err)
		}
	}
	return buf, nil
}

func rawJSON(name string, v any) ([]byte, error) {
	switch x := v.(type) {
	case bool:
		return []byte(strconv.FormatBool(x)), nil
	case int:
		return []byte(strconv.Itoa(x)), nil
	case int64:
		return []byte(strconv.FormatInt(x, 10)), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.NewInvalidStateError(name, "encode non-finite double")
		}
		return []byte(formatDouble(x)), nil
	case json.Number:
		return []byte(x.String()), nil
	}
	return json.Marshal(v)
}

func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// escapePath quotes the characters sjson treats as path syntax.
func escapePath(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch c {
		case '\\', '.', '*', '?', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

func memberOrder(doc Document) []string {
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ki, errI := keys.Lookup(names[i])
		kj, errJ := keys.Lookup(names[j])
		switch {
		case errI == nil && errJ == nil:
			return ki < kj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		}
		return names[i] < names[j]
	})
	return names
}

// Decode applies every member of doc to the matching registry item.
//
// Decode stops at the first failing member. Members applied before it stay
// applied; decode into a Clone and swap it in when all-or-nothing is needed.
func Decode(r *registry.Registry, doc Document) error {
	for _, name := range memberOrder(doc) {
		if err := decodeMember(r, name, doc[name]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeString parses text and applies its members in document order. Text
// that is not a JSON object, or is not valid UTF-8, fails with errors.ErrParse
// before any item changes; otherwise failures follow Decode.
func DecodeString(r *registry.Registry, text string) error {
	return DecodeBytes(r, []byte(text))
}

// DecodeBytes is DecodeString for a byte slice.
func DecodeBytes(r *registry.Registry, data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.NewParseError("invalid JSON text", nil)
	}
	if !utf8.Valid(data) {
		return errors.NewParseError("invalid UTF-8 in JSON text", nil)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return errors.NewParseError(fmt.Sprintf("expected a JSON object, got %s", doc.Type), nil)
	}

	var err error
	doc.ForEach(func(name, member gjson.Result) bool {
		err = decodeMember(r, name.String(), resultValue(member))
		return err == nil
	})
	return err
}

func resultValue(res gjson.Result) any {
	switch res.Type {
	case gjson.True, gjson.False:
		return res.Bool()
	case gjson.String:
		return res.String()
	case gjson.Number:
		return json.Number(res.Raw)
	case gjson.Null:
		return nil
	}
	return res.Value()
}

func decodeMember(r *registry.Registry, name string, v any) error {
	k, err := keys.Lookup(name)
	if err != nil {
		return err
	}
	it, err := r.Item(k)
	if err != nil {
		return err
	}
	return DecodeItem(it, v)
}

// DecodeItem assigns a decoded JSON value to it. Bool, Integer and String
// items take only their own JSON type; Double items also take integers.
// Strings must be valid UTF-8. A rejected value leaves it unchanged.
func DecodeItem(it *registry.Item, v any) error {
	name := it.Key().String()
	switch it.Type() {
	case value.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return mismatch(name, it.Type(), v)
		}
		return it.Set(value.Bool(b))
	case value.TypeInteger:
		n := parseNumber(v)
		if n.kind != integerNumber {
			return mismatch(name, it.Type(), v)
		}
		return it.Set(value.Integer(n.i))
	case value.TypeDouble:
		n := parseNumber(v)
		switch n.kind {
		case integerNumber:
			return it.Set(value.Double(float64(n.i)))
		case floatNumber:
			return it.Set(value.Double(n.f))
		}
		return mismatch(name, it.Type(), v)
	case value.TypeString:
		s, ok := v.(string)
		if !ok {
			return mismatch(name, it.Type(), v)
		}
		if !utf8.ValidString(s) {
			return errors.NewParseError(fmt.Sprintf("invalid UTF-8 in string member %s", name), nil)
		}
		return it.Set(value.String(s))
	}
	return errors.NewInvalidStateError(name, "decode")
}

func mismatch(name string, want value.TypeTag, got any) error {
	return errors.NewTypeMismatchError(name, want.String(), jsonKind(got))
}

type numberKind uint8

const (
	notNumber numberKind = iota
	integerNumber
	floatNumber
)

type number struct {
	kind numberKind
	i    int64
	f    float64
}

func parseNumber(v any) number {
	switch x := v.(type) {
	case int:
		return number{kind: integerNumber, i: int64(x)}
	case int8:
		return number{kind: integerNumber, i: int64(x)}
	case int16:
		return number{kind: integerNumber, i: int64(x)}
	case int32:
		return number{kind: integerNumber, i: int64(x)}
	case int64:
		return number{kind: integerNumber, i: x}
	case uint8:
		return number{kind: integerNumber, i: int64(x)}
	case uint16:
		return number{kind: integerNumber, i: int64(x)}
	case uint32:
		return number{kind: integerNumber, i: int64(x)}
	case float32:
		return number{kind: floatNumber, f: float64(x)}
	case float64:
		return number{kind: floatNumber, f: x}
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return number{kind: integerNumber, i: i}
		}
		if f, err := x.Float64(); err == nil {
			return number{kind: floatNumber, f: f}
		}
	}
	return number{}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	switch parseNumber(v).kind {
	case integerNumber:
		return "integer"
	case floatNumber:
		return "float"
	}
	if _, ok := v.(json.Number); ok {
		// out of range for float64
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
