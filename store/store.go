/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/suparena/propconfig"
	"github.com/suparena/propconfig/datastore"
	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/storagemodels"
)

const (
	// PartitionKey holds every profile of a table.
	PartitionKey = "PROPCONFIG"
	// SortKeyPrefix precedes the profile name in the sort key.
	SortKeyPrefix = "PROFILE#"
	// DefaultProfile is the profile used when none is named.
	DefaultProfile = "default"
)

func init() {
	datastore.RegisterIndexMap[storagemodels.Snapshot](map[string]string{
		"PK": PartitionKey,
		"SK": SortKeyPrefix + "{Profile}",
	})
}

// Store saves configurations as named snapshots.
type Store struct {
	ds  datastore.DataStore[storagemodels.Snapshot]
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a Store backed by ds.
func New(ds datastore.DataStore[storagemodels.Snapshot], opts ...Option) *Store {
	s := &Store{ds: ds, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateProfile(profile string) error {
	if strings.TrimSpace(profile) == "" {
		return errors.NewValidationError("profile", "profile name is required")
	}
	if strings.ContainsAny(profile, "{}") {
		return errors.NewValidationError("profile", "profile name must not contain braces")
	}
	return nil
}

// Save writes the current configuration of cfg under profile. The first save
// creates version 1; later saves increment the version. Save fails with
// errors.ErrConditionFailed if another writer saved the profile in between,
// including a concurrent first save.
func (s *Store) Save(ctx context.Context, profile string, cfg *propconfig.Config) (*storagemodels.Snapshot, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	doc, err := cfg.GetJSONString()
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}

	snap := storagemodels.Snapshot{
		Profile:        profile,
		Revision:       uuid.NewString(),
		Document:       doc,
		Version:        1,
		UpdatedAt:      strfmt.DateTime(s.now().UTC()).String(),
		LibraryVersion: propconfig.Version,
	}
	logger := zerolog.Ctx(ctx).With().Str("profile", profile).Logger()

	existing, err := s.ds.GetOne(ctx, profile)
	switch {
	case errors.IsNotFound(err):
		if err := s.ds.PutWithCondition(ctx, snap, "attribute_not_exists(Profile)", nil); err != nil {
			if errors.IsConditionFailed(err) {
				logger.Warn().Msg("snapshot created concurrently")
			}
			return nil, fmt.Errorf("failed to create snapshot %q: %w", profile, err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read snapshot %q: %w", profile, err)
	default:
		snap.Version = existing.Version + 1
		err := s.ds.UpdateWithCondition(ctx, storagemodels.Snapshot{Profile: profile},
			map[string]any{
				"Revision":       snap.Revision,
				"Document":       snap.Document,
				"Version":        snap.Version,
				"UpdatedAt":      snap.UpdatedAt,
				"LibraryVersion": snap.LibraryVersion,
			},
			"Version = :expected", map[string]any{":expected": existing.Version})
		if err != nil {
			if errors.IsConditionFailed(err) {
				logger.Warn().Int64("expected_version", existing.Version).Msg("snapshot changed concurrently")
			}
			return nil, fmt.Errorf("failed to update snapshot %q: %w", profile, err)
		}
	}

	logger.Info().Int64("version", snap.Version).Str("revision", snap.Revision).Msg("snapshot saved")
	return &snap, nil
}

// Get returns the snapshot stored under profile.
func (s *Store) Get(ctx context.Context, profile string) (*storagemodels.Snapshot, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	snap, err := s.ds.GetOne(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %q: %w", profile, err)
	}
	return snap, nil
}

// Load applies the snapshot stored under profile to cfg. The document is
// applied completely or not at all.
func (s *Store) Load(ctx context.Context, profile string, cfg *propconfig.Config) (*storagemodels.Snapshot, error) {
	snap, err := s.Get(ctx, profile)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyJSONString(snap.Document); err != nil {
		return nil, fmt.Errorf("failed to apply snapshot %q: %w", profile, err)
	}
	zerolog.Ctx(ctx).Info().
		Str("profile", profile).
		Int64("version", snap.Version).
		Str("revision", snap.Revision).
		Msg("snapshot loaded")
	return snap, nil
}

// List returns every stored snapshot ordered by profile name.
func (s *Store) List(ctx context.Context) ([]storagemodels.Snapshot, error) {
	snaps, err := s.ds.Query(ctx, &storagemodels.QueryParams{
		KeyConditionExpression: "PK = :pk AND begins_with(SK, :prefix)",
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: PartitionKey},
			":prefix": &types.AttributeValueMemberS{Value: SortKeyPrefix},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Profile < snaps[j].Profile })
	return snaps, nil
}

// Delete removes the snapshot stored under profile.
func (s *Store) Delete(ctx context.Context, profile string) error {
	if err := validateProfile(profile); err != nil {
		return err
	}
	if err := s.ds.Delete(ctx, profile); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", profile, err)
	}
	zerolog.Ctx(ctx).Info().Str("profile", profile).Msg("snapshot deleted")
	return nil
}
