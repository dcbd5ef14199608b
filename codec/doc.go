/*
Package codec maps a configuration registry to and from a flat JSON object.

Each member name is the exact catalog name of a key and each member value has
the JSON type of the key's declared type: boolean, number or string. Double
keys additionally accept integer literals, which are widened.

	text, err := codec.EncodeString(r)
	// {"NORMALIZE_GAS_CONSTANTS":true,...,"MAXIMUM_TABLE_DIRECTORY_SIZE_IN_GB":1.0,...}

	err = codec.DecodeString(r, `{"NORMALIZE_GAS_CONSTANTS": false}`)

Decoding is a partial update: members that are absent leave their items
alone, while an unknown member name fails with errors.ErrUnknownKey. Decoding
stops at the first failing member and does not roll back members applied
before it.

The package also renders the registry as indented JSON or YAML and describes
the document with a JSON Schema.
*/
package codec
