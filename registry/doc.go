/*
Package registry holds configuration items and the registry that owns them.

An Item binds one key to a typed value. The variant of the value is fixed when
the item is built, and every later read or write must use the same type:

	it := registry.NewItem(keys.SaveRawTables, false)
	_ = registry.Write(it, true)         // ok
	_, err := registry.Read[float64](it) // errors.ErrTypeMismatch

A Registry maps every catalog key to exactly one Item:

	r := registry.New() // catalog defaults
	v, err := r.GetDouble(keys.MaximumTableDirectorySizeInGB)
	err = r.SetBool(keys.NormalizeGasConstants, false)

Registration:
AddItem inserts only when the key is absent. A second item for a key that is
already present is ignored and AddItem reports false; the first writer wins.

The registry does no locking. Callers sharing one across goroutines must
synchronize access themselves; the root propconfig package does this for the
process-wide instance.
*/
package registry
