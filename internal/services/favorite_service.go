package services

import (
	"context"

	"tailorix_backend/internal/repositories"
	"tailorix_backend/internal/services/dto"
	"tailorix_backend/pkg/apperrors"
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, userID, tailorID string) (*dto.FavoriteView, error)
	RemoveFavorite(ctx context.Context, userID, tailorID string) error
	ListFavorites(ctx context.Context, userID string, page, pageSize int) (*dto.FavoriteListResponse, error)
}

type favoriteService struct {
	favoriteRepo repositories.FavoriteRepository
	tailorRepo   repositories.TailorRepository
}

func NewFavoriteService(favoriteRepo repositories.FavoriteRepository, tailorRepo repositories.TailorRepository) FavoriteService {
	return &favoriteService{favoriteRepo: favoriteRepo, tailorRepo: tailorRepo}
}

func (s *favoriteService) AddFavorite(ctx context.Context, userID, tailorID string) (*dto.FavoriteView, error) {
	tailor, err := s.tailorRepo.FindActiveTailorByID(ctx, tailorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTailorNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	favorite, err := s.favoriteRepo.Add(ctx, userID, tailorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyFavorite) {
			return nil, apperrors.ErrConflict(err, "favorites", "Tailor is already in your favorites")
		}
		return nil, err
	}

	return &dto.FavoriteView{
		ID:      favorite.ID,
		AddedAt: favorite.AddedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Tailor:  dto.NewTailorView(tailor),
	}, nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, userID, tailorID string) error {
	err := s.favoriteRepo.Remove(ctx, userID, tailorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFavoriteNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return err
	}
	return nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, userID string, page, pageSize int) (*dto.FavoriteListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	skip := (page - 1) * pageSize

	favorites, total, err := s.favoriteRepo.ListByUser(ctx, userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	views := make([]dto.FavoriteView, 0, len(favorites))
	for i := range favorites {
		// Preload filters inactive tailors down to nil; skip those rows.
		if favorites[i].Tailor == nil {
			continue
		}
		views = append(views, dto.FavoriteView{
			ID:      favorites[i].ID,
			AddedAt: favorites[i].AddedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Tailor:  dto.NewTailorView(favorites[i].Tailor),
		})
	}

	return &dto.FavoriteListResponse{
		Favorites:  views,
		Pagination: buildPagination(page, pageSize, total),
	}, nil
}
