/*
Package propconfig provides the process-wide, typed settings registry of the property library.

Every setting is named by a key from a fixed catalog. Each key carries a description, a declared
type (bool, double or string) and a compile-time default. Values are read and written through
typed accessors that reject a value of the wrong type, and the whole registry is exchanged as a
flat JSON object whose member names are the catalog names.

Package layout:
  - keys: the key catalog
  - value: type tags and the tagged value
  - registry: typed items and the registry that owns them
  - codec: JSON, YAML and JSON Schema views of a registry
  - store: named configuration profiles persisted in a datastore
  - watcher: re-applies a JSON settings file when it changes

Basic Usage:

	// Read and write the process-wide configuration
	on, err := propconfig.GetBool(keys.NormalizeGasConstants)
	err = propconfig.SetDouble(keys.MaximumTableDirectorySizeInGB, 4)

	// Exchange it as JSON
	text, err := propconfig.GetJSONString()
	err = propconfig.SetJSONString(`{"NORMALIZE_GAS_CONSTANTS": false}`)

SetJSON and SetJSONString stop at the first bad member and keep the members applied before
it. ApplyJSONString applies a document completely or not at all.

A Config can also be constructed explicitly with New and passed to the code that needs it.

For more information, see the documentation at https://github.com/suparena/propconfig
*/
package propconfig
