/*
Package keys is the catalog of configuration keys.

Every option is a Key constant with exactly one catalog record giving its
name, description and default. The declared type of a key is the type of its
default, so a record can never disagree with itself:

	name, _ := keys.Name(keys.NormalizeGasConstants)   // "NORMALIZE_GAS_CONSTANTS"
	tag, _ := keys.TypeOf(keys.MaximumTableDirectorySizeInGB) // value.TypeDouble
	k, err := keys.Lookup("SAVE_RAW_TABLES")

Lookups of values outside the enumeration, or of names that are not in the
catalog, fail with errors.ErrUnknownKey. The table is built once at package
initialization and never mutated.
*/
package keys
