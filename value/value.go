/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package value

import (
	"fmt"
	"strconv"

	"github.com/suparena/propconfig/errors"
)

// TypeTag identifies which variant a Value holds.
type TypeTag uint8

const (
	// TypeUndefined marks an item that was never given a value.
	TypeUndefined TypeTag = iota
	// TypeBool is a boolean value.
	TypeBool
	// TypeDouble is a floating-point value.
	TypeDouble
	// TypeInteger is an integral value.
	TypeInteger
	// TypeString is a text value.
	TypeString
)

// String returns the string representation of the tag.
func (t TypeTag) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeDouble:
		return "double"
	case TypeInteger:
		return "integer"
	case TypeString:
		return "string"
	default:
		return "undefined"
	}
}

// Value is a tagged union over the supported setting types. The set of
// implementations is closed: Bool, Double, Integer and String.
type Value interface {
	Type() TypeTag
	isValue()
}

// Bool is the boolean variant.
type Bool bool

// Double is the floating-point variant.
type Double float64

// Integer is the integral variant.
type Integer int

// String is the text variant.
type String string

func (Bool) Type() TypeTag    { return TypeBool }
func (Double) Type() TypeTag  { return TypeDouble }
func (Integer) Type() TypeTag { return TypeInteger }
func (String) Type() TypeTag  { return TypeString }

func (Bool) isValue()    {}
func (Double) isValue()  {}
func (Integer) isValue() {}
func (String) isValue()  {}

// Scalar lists the Go types a Value can be read as or written from.
type Scalar interface {
	bool | float64 | int | string
}

// TagOf returns the tag that corresponds to the Go type T.
func TagOf[T Scalar]() TypeTag {
	var zero T
	switch any(zero).(type) {
	case bool:
		return TypeBool
	case float64:
		return TypeDouble
	case int:
		return TypeInteger
	case string:
		return TypeString
	}
	return TypeUndefined
}

// From wraps a Go scalar in its Value variant.
func From[T Scalar](v T) Value {
	switch x := any(v).(type) {
	case bool:
		return Bool(x)
	case float64:
		return Double(x)
	case int:
		return Integer(x)
	case string:
		return String(x)
	}
	return nil
}

// Of infers the variant from the runtime type of v. Any Go integer kind maps
// to Integer and any float kind to Double.
func Of(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case float64:
		return Double(x), nil
	case float32:
		return Double(x), nil
	case int:
		return Integer(x), nil
	case int8:
		return Integer(x), nil
	case int16:
		return Integer(x), nil
	case int32:
		return Integer(x), nil
	case int64:
		return Integer(x), nil
	case uint8:
		return Integer(x), nil
	case uint16:
		return Integer(x), nil
	case uint32:
		return Integer(x), nil
	case string:
		return String(x), nil
	}
	return nil, errors.NewTypeMismatchError("value", "bool, double, integer or string", fmt.Sprintf("%T", v))
}

// Interface unwraps v into its plain Go value (bool, float64, int or string).
// A nil Value yields nil.
func Interface(v Value) any {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Double:
		return float64(x)
	case Integer:
		return int(x)
	case String:
		return string(x)
	}
	return nil
}

// TypeOf returns the tag of v, or TypeUndefined for nil.
func TypeOf(v Value) TypeTag {
	if v == nil {
		return TypeUndefined
	}
	return v.Type()
}

// Format renders v as plain text, the inverse of Parse.
func Format(v Value) string {
	switch x := v.(type) {
	case Bool:
		return strconv.FormatBool(bool(x))
	case Double:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case Integer:
		return strconv.Itoa(int(x))
	case String:
		return string(x)
	}
	return ""
}

// Parse reads text as a value of the given tag.
func Parse(tag TypeTag, text string) (Value, error) {
	switch tag {
	case TypeBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, errors.NewTypeMismatchError(strconv.Quote(text), tag.String(), "text")
		}
		return Bool(b), nil
	case TypeDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, errors.NewTypeMismatchError(strconv.Quote(text), tag.String(), "text")
		}
		return Double(f), nil
	case TypeInteger:
		i, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.NewTypeMismatchError(strconv.Quote(text), tag.String(), "text")
		}
		return Integer(i), nil
	case TypeString:
		return String(text), nil
	}
	return nil, errors.NewInvalidStateError(strconv.Quote(text), "parse")
}
