package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/storage"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
	"go.uber.org/zap"
)

// ProfileRepository keeps the single user profile in the @user_profile slot
type ProfileRepository struct {
	slot   *storage.JSONSlot[*model.UserProfile]
	logger *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(store storage.KeyValueStore, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		slot:   storage.NewJSONSlot[*model.UserProfile](store, storage.KeyProfile, logger),
		logger: logger,
	}
}

// Save overwrites the stored profile
func (r *ProfileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if err := r.slot.Save(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	r.logger.Debug("profile saved", zap.Int64("user_id", profile.UserID))
	return nil
}

// Get returns the stored profile, nil when none exists
func (r *ProfileRepository) Get(ctx context.Context) (*model.UserProfile, error) {
	profile, _ := r.slot.Load(ctx)
	return profile, nil
}

// Update replaces an existing profile, keeping its creation time
func (r *ProfileRepository) Update(ctx context.Context, profile *model.UserProfile) error {
	return r.slot.Update(ctx, func(current *model.UserProfile, ok bool) (*model.UserProfile, error) {
		if !ok || current == nil {
			return nil, fmt.Errorf("profile %w", ErrNotFound)
		}
		profile.CreatedAt = current.CreatedAt
		profile.UpdatedAt = time.Now().UTC()
		return profile, nil
	})
}

// Delete removes the stored profile
func (r *ProfileRepository) Delete(ctx context.Context) error {
	return r.slot.Clear(ctx)
}
