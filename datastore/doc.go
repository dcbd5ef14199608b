/*
Package datastore defines the persistence interface used to store configuration snapshots.

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]any, condition string, conditionValues map[string]any) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)
	    Delete(ctx context.Context, key string) error
	}

Entity types register an index map that describes how their keys are built:

	datastore.RegisterIndexMap[storagemodels.Snapshot](map[string]string{
	    "PK": "PROPCONFIG",
	    "SK": "PROFILE#{Profile}",
	})

Implementations:
  - ddb: DynamoDB implementation for single-table layouts
  - mock: In-memory implementation for testing
*/
package datastore
