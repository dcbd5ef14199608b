/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"github.com/suparena/propconfig/datastore"
	"github.com/suparena/propconfig/errors"
)

// API is the part of the DynamoDB client used by DynamodbDataStore.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// DynamodbDataStore implements datastore.DataStore[T] on a single DynamoDB table.
type DynamodbDataStore[T any] struct {
	client    API
	tableName string
}

var _ datastore.DataStore[struct{}] = (*DynamodbDataStore[struct{}])(nil)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills each template of indexMap with the attributes of keysInput.
// A macro naming an attribute that is absent, empty or not a scalar fails
// with a validation error.
func expandMacros(indexMap map[string]string, keysInput any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(keysInput)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keysInput: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for fieldName, template := range indexMap {
		var missing string
		res[fieldName] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			attr := strings.Trim(macro, "{}")
			var s string
			switch tv := av[attr].(type) {
			case *types.AttributeValueMemberS:
				s = tv.Value
			case *types.AttributeValueMemberN:
				s = tv.Value
			case *types.AttributeValueMemberBOOL:
				s = fmt.Sprintf("%v", tv.Value)
			}
			if s == "" && missing == "" {
				missing = attr
			}
			return s
		})
		if missing != "" {
			return nil, errors.NewValidationError(fieldName, fmt.Sprintf("missing key attribute %s", missing))
		}
	}
	return res, nil
}

// expandStringKey replaces every macro in the index map with key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		expanded[field] = macroPattern.ReplaceAllLiteralString(template, key)
	}
	return expanded
}

// buildKeyFromExpanded requires non-empty "PK" and "SK" values.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, errors.NewValidationError("key", "expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used
// when awsAccessKey is set; otherwise the default credential chain applies.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(awsRegion)}
	if awsAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("region", awsRegion).
		Bool("static_credentials", awsAccessKey != "").
		Msg("DynamoDB client initialized")
	return sdk.NewFromConfig(cfg), nil
}

// NewDynamodbDataStore constructs a new DynamodbDataStore for type T.
func NewDynamodbDataStore[T any](ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, awsDDBTableName string) (*DynamodbDataStore[T], error) {
	if awsDDBTableName == "" {
		return nil, errors.NewValidationError("table", "table name is required")
	}
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewWithClient[T](client, awsDDBTableName), nil
}

// NewWithClient constructs a DynamodbDataStore on an existing client.
func NewWithClient[T any](client API, tableName string) *DynamodbDataStore[T] {
	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tableName,
	}
}

func (d *DynamodbDataStore[T]) indexMap() (map[string]string, error) {
	m, ok := datastore.IndexMapFor[T]()
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrNoIndexMap, entityName[T]())
	}
	return m, nil
}

func entityName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}

func (d *DynamodbDataStore[T]) stringKey(key string) (map[string]types.AttributeValue, error) {
	indexMap, err := d.indexMap()
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expandStringKey(indexMap, key))
}

// getKey builds the primary key from a string key or from an entity-shaped value.
func (d *DynamodbDataStore[T]) getKey(keyInput any) (map[string]types.AttributeValue, error) {
	if s, ok := keyInput.(string); ok {
		return d.stringKey(s)
	}

	indexMap, err := d.indexMap()
	if err != nil {
		return nil, err
	}
	expanded, err := expandMacros(indexMap, keyInput)
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expanded)
}

// GetOne retrieves a single item using a string key.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	keyMap, err := d.stringKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &d.tableName,
		Key:            keyMap,
		ConsistentRead: &consistentRead,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(entityName[T](), key)
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

var consistentRead = true

// Put stores entity with the key attributes produced by its index map.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	return d.PutWithCondition(ctx, entity, "", nil)
}

// PutWithCondition stores entity only if condition holds for the item it
// replaces. An empty condition always holds. A failed condition is reported as
// errors.ErrConditionFailed.
func (d *DynamodbDataStore[T]) PutWithCondition(ctx context.Context, entity T, condition string, conditionValues map[string]any) error {
	indexMap, err := d.indexMap()
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	expanded, err := expandMacros(indexMap, entity)
	if err != nil {
		return err
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return err
	}
	for k, v := range expanded {
		av[k] = &types.AttributeValueMemberS{Value: v}
	}

	input := &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	}
	if condition != "" {
		input.ConditionExpression = &condition
		values, err := marshalConditionValues(conditionValues, nil)
		if err != nil {
			return err
		}
		if len(values) > 0 {
			input.ExpressionAttributeValues = values
		}
	}

	if _, err := d.client.PutItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			zerolog.Ctx(ctx).Debug().Str("table", d.tableName).Str("condition", condition).Msg("conditional put rejected")
			return fmt.Errorf("%w: %v", errors.NewConditionFailedError("PutWithCondition", condition), err)
		}
		return fmt.Errorf("PutItem failed: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("table", d.tableName).Str("pk", expanded["PK"]).Str("sk", expanded["SK"]).Msg("item stored")
	return nil
}

func isConditionalCheckFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return stderrors.As(err, &cfe)
}

// marshalConditionValues adds the ":name" condition placeholders to into.
// Placeholders already present in into are reserved.
func marshalConditionValues(conditionValues map[string]any, into map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if into == nil {
		into = make(map[string]types.AttributeValue, len(conditionValues))
	}
	for placeholder, v := range conditionValues {
		if _, clash := into[placeholder]; clash {
			return nil, errors.NewValidationError("conditionValues", fmt.Sprintf("placeholder %s is reserved for updates", placeholder))
		}
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal condition value %s: %w", placeholder, err)
		}
		into[placeholder] = av
	}
	return into, nil
}

// Delete removes an item using a string key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key string) error {
	keyMap, err := d.stringKey(key)
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// buildUpdateExpression turns field -> value pairs into a SET expression with
// #fN name and :vN value placeholders, numbered in field order.
func buildUpdateExpression(updates map[string]any) (string, map[string]string, map[string]types.AttributeValue, error) {
	if len(updates) == 0 {
		return "", nil, nil, errors.NewValidationError("updates", "no updates provided")
	}

	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	setClauses := make([]string, 0, len(fields))
	exprAttrNames := make(map[string]string, len(fields))
	exprAttrValues := make(map[string]types.AttributeValue, len(fields))

	for i, field := range fields {
		placeholderName := fmt.Sprintf("#f%d", i)
		placeholderValue := fmt.Sprintf(":v%d", i)

		av, err := attributevalue.Marshal(updates[field])
		if err != nil {
			return "", nil, nil, fmt.Errorf("unhandled update value type for field '%s': %w", field, err)
		}

		setClauses = append(setClauses, placeholderName+" = "+placeholderValue)
		exprAttrNames[placeholderName] = field
		exprAttrValues[placeholderValue] = av
	}

	return "SET " + strings.Join(setClauses, ", "), exprAttrNames, exprAttrValues, nil
}

// UpdateWithCondition applies updates to the item named by keyInput. A failed
// condition is reported as errors.ErrConditionFailed.
func (d *DynamodbDataStore[T]) UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]any, condition string, conditionValues map[string]any) error {
	key, err := d.getKey(keyInput)
	if err != nil {
		return fmt.Errorf("failed to build key: %w", err)
	}

	updateExpr, exprAttrNames, exprAttrValues, err := buildUpdateExpression(updates)
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	exprAttrValues, err = marshalConditionValues(conditionValues, exprAttrValues)
	if err != nil {
		return err
	}

	input := &sdk.UpdateItemInput{
		TableName:                 &d.tableName,
		Key:                       key,
		UpdateExpression:          &updateExpr,
		ExpressionAttributeNames:  exprAttrNames,
		ExpressionAttributeValues: exprAttrValues,
		ReturnValues:              types.ReturnValueNone,
	}
	if condition != "" {
		input.ConditionExpression = &condition
	}

	if _, err := d.client.UpdateItem(ctx, input); err != nil {
		if isConditionalCheckFailed(err) {
			zerolog.Ctx(ctx).Debug().Str("table", d.tableName).Str("condition", condition).Msg("conditional update rejected")
			return fmt.Errorf("%w: %v", errors.NewConditionFailedError("UpdateWithCondition", condition), err)
		}
		return fmt.Errorf("UpdateWithCondition failed: %w", err)
	}
	return nil
}
