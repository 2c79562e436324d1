package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vis-hal-git/Ai-interviewer/internal/models"
)

var ErrRecordNotFound = errors.New("record not found")

const userLockSQL = "SELECT pg_advisory_xact_lock(hashtext(?))"

type ProfileRepository interface {
	// ReplaceForUser deletes every profile owned by profile.UserID and inserts
	// profile in one transaction. It returns the deleted rows. Concurrent calls
	// for the same user are serialized, so at most one profile survives.
	ReplaceForUser(ctx context.Context, profile *models.Profile) ([]models.Profile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	FindByUser(ctx context.Context, userID string) ([]models.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ReplaceForUser(ctx context.Context, profile *models.Profile) ([]models.Profile, error) {
	var superseded []models.Profile

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// released at commit or rollback
		if err := tx.Exec(userLockSQL, profile.UserID).Error; err != nil {
			return fmt.Errorf("failed to lock profiles of user: %w", err)
		}

		if err := tx.Where("user_id = ?", profile.UserID).Find(&superseded).Error; err != nil {
			return fmt.Errorf("failed to load previous profiles: %w", err)
		}

		if len(superseded) > 0 {
			if err := tx.Where("user_id = ?", profile.UserID).Delete(&models.Profile{}).Error; err != nil {
				return fmt.Errorf("failed to delete previous profiles: %w", err)
			}
		}

		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return superseded, nil
}

func (r *profileRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", id, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) FindByUser(ctx context.Context, userID string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Limit(100).
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}

	return profiles, nil
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Profile{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrRecordNotFound)
	}

	return nil
}
