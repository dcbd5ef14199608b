/*
Package ddb provides a DynamoDB implementation of the DataStore interface.

The DynamodbDataStore supports:
  - Single-table design patterns
  - Macro-based key expansion (e.g., "PROFILE#{Profile}")
  - Conditional updates for optimistic locking
  - Paginated key condition queries

Macro Expansion:
Keys are built from the index map registered for the entity type. Macros are replaced with
entity attribute values, or with the string key passed to GetOne and Delete:

	datastore.RegisterIndexMap[storagemodels.Snapshot](map[string]string{
	    "PK": "PROPCONFIG",          // Static value
	    "SK": "PROFILE#{Profile}",   // Becomes "PROFILE#default"
	})

Conditional Updates:

	err := store.UpdateWithCondition(ctx, storagemodels.Snapshot{Profile: "default"},
	    map[string]any{"Document": text, "Version": int64(4)},
	    "Version = :expected", map[string]any{":expected": int64(3)})
	if errors.IsConditionFailed(err) {
	    // someone else saved first
	}

Operations log through the zerolog logger carried by the context, if any.
*/
package ddb
