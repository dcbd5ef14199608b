/*
Package errors provides semantic error types for propconfig.

The configuration core fails with one of four kinds, each a sentinel that can be
checked with the standard errors.Is() function or the provided helpers:

	var (
	    ErrUnknownKey   = errors.New("unknown configuration key")
	    ErrTypeMismatch = errors.New("configuration type mismatch")
	    ErrInvalidState = errors.New("invalid configuration state")
	    ErrParse        = errors.New("malformed configuration document")
	)

The snapshot storage layer adds ErrNotFound, ErrInvalidInput, ErrConditionFailed
and ErrNoIndexMap.

Usage:

	v, err := propconfig.GetDouble(keys.MaximumTableDirectorySizeInGB)
	if err != nil {
	    if errors.IsTypeMismatch(err) {
	        // the key is not a Double
	    }
	    return err
	}

	err := errors.NewTypeMismatchError("SAVE_RAW_TABLES", "bool", "string")
	err := errors.NewConditionFailedError("update", "Version = :expected")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
