/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/propconfig/storagemodels"
)

type DataStore[T any] interface {
	// GetOne returns errors.ErrNotFound when no entity has the key.
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	// PutWithCondition stores entity only if condition holds for the stored
	// entity it would replace, and fails with errors.ErrConditionFailed
	// otherwise. "attribute_not_exists(Attr)" makes it a create.
	PutWithCondition(ctx context.Context, entity T, condition string, conditionValues map[string]any) error

	// UpdateWithCondition sets the fields in updates on the entity identified by
	// keyInput if condition holds. conditionValues supplies the ":name"
	// placeholders used in condition.
	UpdateWithCondition(ctx context.Context, keyInput any, updates map[string]any, condition string, conditionValues map[string]any) error

	Query(ctx context.Context, params *storagemodels.QueryParams) ([]T, error)

	Delete(ctx context.Context, key string) error
}
