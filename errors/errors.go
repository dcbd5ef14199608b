/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrUnknownKey is returned when a key or key name has no catalog or registry entry
	ErrUnknownKey = errors.New("unknown configuration key")

	// ErrTypeMismatch is returned when a read, write or decode targets an item of another type
	ErrTypeMismatch = errors.New("configuration type mismatch")

	// ErrInvalidState is returned when an item carries the undefined type tag
	ErrInvalidState = errors.New("invalid configuration state")

	// ErrParse is returned when configuration text is not a well-formed JSON object
	ErrParse = errors.New("malformed configuration document")

	// ErrNotFound is returned when a stored snapshot is not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConditionFailed is returned when a conditional update fails
	ErrConditionFailed = errors.New("condition check failed")

	// ErrNoIndexMap is returned when no index map is found for a type
	ErrNoIndexMap = errors.New("no index map found for type")
)

// UnknownKeyError names the key (or key name) that could not be resolved
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown configuration key %q", e.Key)
}

func (e *UnknownKeyError) Is(target error) bool {
	return target == ErrUnknownKey
}

// TypeMismatchError describes a typed access that disagrees with the item's declared type
type TypeMismatchError struct {
	Key      string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch for %s: declared %s, got %s", e.Key, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// InvalidStateError reports an item observed with the undefined type tag
type InvalidStateError struct {
	Key       string
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state for %s during %s", e.Key, e.Operation)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ParseError represents malformed configuration text
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NotFoundError represents an error when a stored entity is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConditionFailedError represents a failed conditional operation
type ConditionFailedError struct {
	Operation string
	Condition string
}

func (e *ConditionFailedError) Error() string {
	return fmt.Sprintf("condition check failed for %s operation: %s", e.Operation, e.Condition)
}

func (e *ConditionFailedError) Is(target error) bool {
	return target == ErrConditionFailed
}

// Helper functions for creating errors

// NewUnknownKeyError creates a new UnknownKeyError
func NewUnknownKeyError(key string) error {
	return &UnknownKeyError{Key: key}
}

// NewTypeMismatchError creates a new TypeMismatchError
func NewTypeMismatchError(key, expected, actual string) error {
	return &TypeMismatchError{Key: key, Expected: expected, Actual: actual}
}

// NewInvalidStateError creates a new InvalidStateError
func NewInvalidStateError(key, operation string) error {
	return &InvalidStateError{Key: key, Operation: operation}
}

// NewParseError creates a new ParseError wrapping an optional cause
func NewParseError(message string, err error) error {
	return &ParseError{Message: message, Err: err}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConditionFailedError creates a new ConditionFailedError
func NewConditionFailedError(operation, condition string) error {
	return &ConditionFailedError{Operation: operation, Condition: condition}
}

// IsUnknownKey checks if an error is an unknown key error
func IsUnknownKey(err error) bool {
	return errors.Is(err, ErrUnknownKey)
}

// IsTypeMismatch checks if an error is a type mismatch error
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsInvalidState checks if an error is an invalid state error
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConditionFailed checks if an error is a condition failed error
func IsConditionFailed(err error) bool {
	return errors.Is(err, ErrConditionFailed)
}
