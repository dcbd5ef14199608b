/*
Package storagemodels defines the data structures shared by the datastores and the snapshot store.

Key Types:

QueryParams:
Parameters for querying the datastore:

	params := &QueryParams{
	    KeyConditionExpression: "PK = :pk AND begins_with(SK, :prefix)",
	    ExpressionAttributeValues: map[string]types.AttributeValue{
	        ":pk":     &types.AttributeValueMemberS{Value: "PROPCONFIG"},
	        ":prefix": &types.AttributeValueMemberS{Value: "PROFILE#"},
	    },
	}

Snapshot:
A configuration document saved under a profile name, with an optimistic-concurrency
Version and an RFC 3339 UpdatedAt time.
*/
package storagemodels
