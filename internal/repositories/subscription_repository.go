package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"tailorix_backend/internal/models"
)

var ErrPlanNotFound = errors.New("subscription plan not found")

type SubscriptionRepository interface {
	ListActivePlans(ctx context.Context) ([]models.SubscriptionPlan, error)
	FindPlanByID(ctx context.Context, id string) (*models.SubscriptionPlan, error)
	SeedDefaultPlans(ctx context.Context) error

	// ActivateForUser writes the embedded subscription fields on the user row.
	ActivateForUser(ctx context.Context, userID string, plan *models.SubscriptionPlan) error

	// ExpireOverdue deactivates subscriptions past their expiry. Returns the
	// number of rows flipped.
	ExpireOverdue(ctx context.Context) (int64, error)
}

type SubscriptionRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &SubscriptionRepositoryImpl{db: db}
}

func (r *SubscriptionRepositoryImpl) ListActivePlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("price ASC").
		Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepositoryImpl) FindPlanByID(ctx context.Context, id string) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepositoryImpl) SeedDefaultPlans(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SubscriptionPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.SubscriptionPlan{
		{
			Name:         string(models.TierBasic),
			Price:        199,
			DurationDays: 30,
			Features:     datatypes.JSON([]byte(`{"priority_listing": false, "featured_badge": false}`)),
			IsActive:     true,
		},
		{
			Name:         string(models.TierSilver),
			Price:        499,
			DurationDays: 30,
			Features:     datatypes.JSON([]byte(`{"priority_listing": true, "featured_badge": false}`)),
			IsActive:     true,
		},
		{
			Name:         string(models.TierGold),
			Price:        999,
			DurationDays: 30,
			Features:     datatypes.JSON([]byte(`{"priority_listing": true, "featured_badge": true}`)),
			IsActive:     true,
		},
	}

	return r.db.WithContext(ctx).Create(&plans).Error
}

func (r *SubscriptionRepositoryImpl) ActivateForUser(ctx context.Context, userID string, plan *models.SubscriptionPlan) error {
	expiresAt := time.Now().AddDate(0, 0, plan.DurationDays)

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", userID, models.UserRoleTailor).
		Updates(map[string]interface{}{
			"subscription_active":     true,
			"subscription_plan_name":  plan.Name,
			"subscription_expires_at": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *SubscriptionRepositoryImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE users
		SET subscription_active = false, updated_at = NOW()
		WHERE subscription_active = true
		AND subscription_expires_at IS NOT NULL
		AND subscription_expires_at < NOW()
	`)
	return result.RowsAffected, result.Error
}
