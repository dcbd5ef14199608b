/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
)

// QueryParams defines parameters for a DynamoDB Query operation.
type QueryParams struct {
	// TableName overrides the datastore's table when set.
	TableName string
	// KeyConditionExpression is the primary condition for the query.
	KeyConditionExpression string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// Limit caps the number of items returned. Without it every page is read.
	Limit *int32
	// ExclusiveStartKey for pagination
	ExclusiveStartKey map[string]types.AttributeValue
	// ScanIndexForward specifies the order for index traversal.
	// If true (default), traversal is in ascending order.
	// If false, traversal is in descending order.
	ScanIndexForward *bool
}

// Snapshot is a configuration document stored under a profile name.
type Snapshot struct {
	Profile string `dynamodbav:"Profile" json:"profile"`
	// Revision identifies this particular save.
	Revision string `dynamodbav:"Revision" json:"revision"`
	// Document is the configuration as compact JSON text.
	Document string `dynamodbav:"Document" json:"document"`
	// Version increases by one on every save and guards concurrent updates.
	Version int64 `dynamodbav:"Version" json:"version"`
	// UpdatedAt is an RFC 3339 date-time.
	UpdatedAt      string `dynamodbav:"UpdatedAt" json:"updatedAt"`
	LibraryVersion string `dynamodbav:"LibraryVersion" json:"libraryVersion"`
}

// Timestamp parses UpdatedAt.
func (s Snapshot) Timestamp() (strfmt.DateTime, error) {
	return strfmt.ParseDateTime(s.UpdatedAt)
}
