// Package value defines the tagged union stored by configuration items.
//
// A Value is exactly one of Bool, Double, Integer or String; TypeTag names the
// variant. TypeUndefined exists only to detect items that were never
// initialized and is never carried by a live Value.
package value
