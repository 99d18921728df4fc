package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tailorix_backend/internal/models"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyFavorite  = errors.New("tailor is already in favorites")
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, tailorID string) (*models.Favorite, error)
	Remove(ctx context.Context, userID, tailorID string) error
	ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.Favorite, int64, error)

	// FindFavoriteTailorIDs returns the full favorite set for a user in one
	// query, used to annotate listings without a per-row lookup.
	FindFavoriteTailorIDs(ctx context.Context, userID string) (map[string]struct{}, error)
}

type FavoriteRepositoryImpl struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &FavoriteRepositoryImpl{db: db}
}

func (r *FavoriteRepositoryImpl) Add(ctx context.Context, userID, tailorID string) (*models.Favorite, error) {
	var existing models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tailor_id = ?", userID, tailorID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyFavorite
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorite := &models.Favorite{UserID: userID, TailorID: tailorID}
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		return nil, err
	}
	return favorite, nil
}

func (r *FavoriteRepositoryImpl) Remove(ctx context.Context, userID, tailorID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND tailor_id = ?", userID, tailorID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepositoryImpl) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.Favorite, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []models.Favorite
	err := base.
		Preload("Tailor", "is_active = ?", true).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&favorites).Error
	return favorites, total, err
}

func (r *FavoriteRepositoryImpl) FindFavoriteTailorIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	var tailorIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Pluck("tailor_id", &tailorIDs).Error
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(tailorIDs))
	for _, id := range tailorIDs {
		ids[id] = struct{}{}
	}
	return ids, nil
}
