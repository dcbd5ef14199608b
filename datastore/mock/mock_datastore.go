/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DataStore interface for testing
package mock

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/propconfig/datastore"
	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/storagemodels"
)

// DataStore is an in-memory datastore.DataStore[T]. Updates are applied
// through the entity's DynamoDB attribute form, so field names follow the
// dynamodbav tags.
type DataStore[T any] struct {
	mu          sync.RWMutex
	data        map[string]T
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)
	getKeyFunc  func(entity T) string
	putError    error
	deleteError error
	updateError error
}

var _ datastore.DataStore[struct{}] = (*DataStore[struct{}])(nil)

// New creates a new mock DataStore
func New[T any]() *DataStore[T] {
	return &DataStore[T]{
		data: make(map[string]T),
	}
}

// WithGetKeyFunc sets a custom function to extract keys from entities
func (m *DataStore[T]) WithGetKeyFunc(f func(T) string) *DataStore[T] {
	m.getKeyFunc = f
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore[T]) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)) *DataStore[T] {
	m.queryFunc = f
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore[T]) WithDeleteError(err error) *DataStore[T] {
	m.deleteError = err
	return m
}

// WithUpdateError makes UpdateWithCondition operations return an error
func (m *DataStore[T]) WithUpdateError(err error) *DataStore[T] {
	m.updateError = err
	return m
}

// GetOne retrieves an entity by key
func (m *DataStore[T]) GetOne(ctx context.Context, key string) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if entity, exists := m.data[key]; exists {
		return &entity, nil
	}

	var zero T
	return nil, errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
}

// Put stores an entity
func (m *DataStore[T]) Put(ctx context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	key := m.extractKey(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = entity
	return nil
}

// PutWithCondition stores entity if condition holds for the entity stored
// under the same key. The condition grammar is the one UpdateWithCondition
// understands.
func (m *DataStore[T]) PutWithCondition(ctx context.Context, entity T, condition string, conditionValues map[string]any) error {
	if m.putError != nil {
		return m.putError
	}

	key := m.extractKey(entity)
	if key == "" {
		return errors.NewValidationError("key", "unable to extract key from entity")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var attrs map[string]types.AttributeValue
	if existing, exists := m.data[key]; exists {
		var err error
		if attrs, err = attributevalue.MarshalMap(existing); err != nil {
			return fmt.Errorf("failed to marshal entity: %w", err)
		}
	}
	ok, err := evalCondition(attrs, condition, conditionValues)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewConditionFailedError("PutWithCondition", condition)
	}
	m.data[key] = entity
	return nil
}

// UpdateWithCondition sets fields on a stored entity. keyInput is either the
// string key or an entity whose key is extracted. The condition understands
// "attr = :value", "attribute_exists(attr)" and "attribute_not_exists(attr)"
// clauses joined by AND.
func (m *DataStore[T]) UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]any, condition string, conditionValues map[string]any) error {
	if m.updateError != nil {
		return m.updateError
	}
	if len(updates) == 0 {
		return errors.NewValidationError("updates", "no updates provided")
	}

	var key string
	switch k := keyInput.(type) {
	case string:
		key = k
	case T:
		key = m.extractKey(k)
	default:
		return errors.NewValidationError("keyInput", fmt.Sprintf("unsupported key type %T", keyInput))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entity, exists := m.data[key]
	var attrs map[string]types.AttributeValue
	if exists {
		var err error
		if attrs, err = attributevalue.MarshalMap(entity); err != nil {
			return fmt.Errorf("failed to marshal entity: %w", err)
		}
	}

	ok, err := evalCondition(attrs, condition, conditionValues)
	if err != nil {
		return err
	}
	if !ok {
		return errors.NewConditionFailedError("UpdateWithCondition", condition)
	}
	if attrs == nil {
		attrs = make(map[string]types.AttributeValue, len(updates))
	}

	for field, v := range updates {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return fmt.Errorf("unhandled update value type for field '%s': %w", field, err)
		}
		attrs[field] = av
	}

	var updated T
	if err := attributevalue.UnmarshalMap(attrs, &updated); err != nil {
		return fmt.Errorf("failed to unmarshal updated entity: %w", err)
	}
	m.data[key] = updated
	return nil
}

func evalCondition(attrs map[string]types.AttributeValue, condition string, values map[string]any) (bool, error) {
	if strings.TrimSpace(condition) == "" {
		return true, nil
	}

	for _, clause := range strings.Split(condition, " AND ") {
		clause = strings.TrimSpace(clause)
		switch {
		case strings.HasPrefix(clause, "attribute_exists(") && strings.HasSuffix(clause, ")"):
			name := strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_exists("), ")")
			if _, ok := attrs[strings.TrimSpace(name)]; !ok {
				return false, nil
			}
		case strings.HasPrefix(clause, "attribute_not_exists(") && strings.HasSuffix(clause, ")"):
			name := strings.TrimSuffix(strings.TrimPrefix(clause, "attribute_not_exists("), ")")
			if _, ok := attrs[strings.TrimSpace(name)]; ok {
				return false, nil
			}
		default:
			name, placeholder, found := strings.Cut(clause, "=")
			if !found {
				return false, errors.NewValidationError("condition", fmt.Sprintf("unsupported clause %q", clause))
			}
			name, placeholder = strings.TrimSpace(name), strings.TrimSpace(placeholder)
			want, ok := values[placeholder]
			if !ok {
				return false, errors.NewValidationError("conditionValues", fmt.Sprintf("missing value for %s", placeholder))
			}
			av, ok := attrs[name]
			if !ok {
				return false, nil
			}
			equal, err := sameValue(av, want)
			if err != nil || !equal {
				return false, err
			}
		}
	}
	return true, nil
}

// sameValue compares through the generic attribute form so that, for example,
// int and int64 values are equal.
func sameValue(av types.AttributeValue, want any) (bool, error) {
	wantAV, err := attributevalue.Marshal(want)
	if err != nil {
		return false, fmt.Errorf("failed to marshal condition value: %w", err)
	}
	var got, expected any
	if err := attributevalue.Unmarshal(av, &got); err != nil {
		return false, err
	}
	if err := attributevalue.Unmarshal(wantAV, &expected); err != nil {
		return false, err
	}
	return reflect.DeepEqual(got, expected), nil
}

// Query returns every stored entity in key order unless a query function is
// set. params.Limit is honored.
func (m *DataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	results := make([]T, 0, len(keys))
	for _, k := range keys {
		if params != nil && params.Limit != nil && len(results) >= int(*params.Limit) {
			break
		}
		results = append(results, m.data[k])
	}
	return results, nil
}

// Delete removes an entity by key
func (m *DataStore[T]) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		var zero T
		return errors.NewNotFoundError(fmt.Sprintf("%T", zero), key)
	}

	delete(m.data, key)
	return nil
}

// Helper methods for testing

// SetData directly sets the internal data map (for testing)
func (m *DataStore[T]) SetData(data map[string]T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// GetData returns a copy of the internal data map (for testing)
func (m *DataStore[T]) GetData() map[string]T {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]T, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}

// Count returns the number of stored entities
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// extractKey returns the entity's key, or "key_<value>" without a key function.
func (m *DataStore[T]) extractKey(entity T) string {
	if m.getKeyFunc != nil {
		return m.getKeyFunc(entity)
	}
	return fmt.Sprintf("key_%v", entity)
}
