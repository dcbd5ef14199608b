/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"

	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/storagemodels"
)

// Query runs a key condition query and unmarshals every item into T. Pages
// are followed until the table is exhausted or params.Limit items are read.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error) {
	if params == nil || params.KeyConditionExpression == "" {
		return nil, errors.NewValidationError("KeyConditionExpression", "a key condition is required")
	}

	table := d.tableName
	if params.TableName != "" {
		table = params.TableName
	}

	input := &sdk.QueryInput{
		TableName:                 &table,
		KeyConditionExpression:    &params.KeyConditionExpression,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		Limit:                     params.Limit,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
	}

	logger := zerolog.Ctx(ctx)
	var results []T
	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := d.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}

		for _, item := range out.Items {
			var v T
			if err := attributevalue.UnmarshalMap(item, &v); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			results = append(results, v)
		}
		logger.Debug().Str("table", table).Int("page", page).Int("items", len(out.Items)).Msg("query page read")

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		if params.Limit != nil && len(results) >= int(*params.Limit) {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	if params.Limit != nil && len(results) > int(*params.Limit) {
		results = results[:*params.Limit]
	}
	return results, nil
}
