package services

import (
	"context"
	"time"

	"tailorix_backend/internal/models"
	"tailorix_backend/internal/repositories"
	"tailorix_backend/internal/services/dto"
	"tailorix_backend/pkg/apperrors"
)

const (
	defaultListPage     = 1
	defaultListPageSize = 12
	newlyJoinedDays     = 30
	topCitiesLimit      = 10
)

// TailorService serves the public listing endpoints. Each operation is a
// thin adapter over the shared repository; the ranked ordering is the same
// one discovery uses.
type TailorService interface {
	ListTailors(ctx context.Context, req *dto.ListTailorsRequest, requestingUserID string) (*dto.TailorListResponse, error)
	SearchTailors(ctx context.Context, req *dto.SearchTailorsRequest) (*dto.TailorListResponse, error)
	GetNewlyJoined(ctx context.Context, days, page, pageSize int) (*dto.TailorListResponse, error)
	GetTailorDetails(ctx context.Context, tailorID string) (*dto.TailorView, error)
	GetTailorStats(ctx context.Context) (*dto.TailorStats, error)
}

type tailorService struct {
	tailorRepo   repositories.TailorRepository
	favoriteRepo repositories.FavoriteRepository
}

func NewTailorService(tailorRepo repositories.TailorRepository, favoriteRepo repositories.FavoriteRepository) TailorService {
	return &tailorService{tailorRepo: tailorRepo, favoriteRepo: favoriteRepo}
}

func (s *tailorService) ListTailors(ctx context.Context, req *dto.ListTailorsRequest, requestingUserID string) (*dto.TailorListResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)
	skip := (page - 1) * pageSize

	criteria := repositories.TailorSearchCriteria{
		City:           req.City,
		State:          req.State,
		Service:        req.Service,
		MinRating:      req.MinRating,
		MaxPrice:       req.MaxPrice,
		PickupDelivery: req.PickupDelivery,
	}

	sort := repositories.SortSpec(req.SortBy)
	if sort == "" {
		sort = repositories.SortRanked
	}

	rows, err := s.tailorRepo.FindDiscoverable(ctx, criteria, sort, skip, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.tailorRepo.CountDiscoverable(ctx, criteria)
	if err != nil {
		return nil, err
	}

	tailors := rankedViews(rows)

	if requestingUserID != "" {
		favoriteIDs, err := s.favoriteRepo.FindFavoriteTailorIDs(ctx, requestingUserID)
		if err != nil {
			return nil, err
		}
		for i := range tailors {
			_, isFavorite := favoriteIDs[tailors[i].ID]
			flag := isFavorite
			tailors[i].IsFavorite = &flag
		}
	}

	return &dto.TailorListResponse{
		Tailors:    tailors,
		Pagination: buildPagination(page, pageSize, total),
	}, nil
}

func (s *tailorService) SearchTailors(ctx context.Context, req *dto.SearchTailorsRequest) (*dto.TailorListResponse, error) {
	if req.Query == "" {
		return nil, apperrors.NewBadRequestError("Search query is required")
	}

	page, pageSize := normalizePage(req.Page, req.PageSize)
	skip := (page - 1) * pageSize

	criteria := repositories.TailorSearchCriteria{
		Query:   req.Query,
		City:    req.City,
		Pincode: req.Pincode,
	}

	rows, err := s.tailorRepo.FindDiscoverable(ctx, criteria, repositories.SortRating, skip, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.tailorRepo.CountDiscoverable(ctx, criteria)
	if err != nil {
		return nil, err
	}

	return &dto.TailorListResponse{
		Tailors:    rankedViews(rows),
		Pagination: buildPagination(page, pageSize, total),
	}, nil
}

func (s *tailorService) GetNewlyJoined(ctx context.Context, days, page, pageSize int) (*dto.TailorListResponse, error) {
	if days <= 0 {
		days = newlyJoinedDays
	}
	page, pageSize = normalizePage(page, pageSize)
	skip := (page - 1) * pageSize

	since := time.Now().AddDate(0, 0, -days)
	rows, total, err := s.tailorRepo.FindNewSince(ctx, since, skip, pageSize)
	if err != nil {
		return nil, err
	}

	return &dto.TailorListResponse{
		Tailors:    rankedViews(rows),
		Pagination: buildPagination(page, pageSize, total),
	}, nil
}

func (s *tailorService) GetTailorDetails(ctx context.Context, tailorID string) (*dto.TailorView, error) {
	tailor, err := s.tailorRepo.FindActiveTailorByID(ctx, tailorID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTailorNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	view := dto.NewTailorView(tailor)
	return &view, nil
}

func (s *tailorService) GetTailorStats(ctx context.Context) (*dto.TailorStats, error) {
	total, err := s.tailorRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	newTailors, err := s.tailorRepo.CountActiveSince(ctx, time.Now().AddDate(0, 0, -newlyJoinedDays))
	if err != nil {
		return nil, err
	}

	gold, err := s.tailorRepo.CountByTier(ctx, models.TierGold)
	if err != nil {
		return nil, err
	}
	silver, err := s.tailorRepo.CountByTier(ctx, models.TierSilver)
	if err != nil {
		return nil, err
	}
	basic, err := s.tailorRepo.CountByTier(ctx, models.TierBasic)
	if err != nil {
		return nil, err
	}

	cities, err := s.tailorRepo.TopCities(ctx, topCitiesLimit)
	if err != nil {
		return nil, err
	}

	topCities := make([]dto.CityStat, 0, len(cities))
	for _, c := range cities {
		topCities = append(topCities, dto.CityStat{City: c.City, Count: c.Count})
	}

	return &dto.TailorStats{
		TotalTailors: total,
		NewTailors:   newTailors,
		Subscription: dto.TierBreakdown{Gold: gold, Silver: silver, Basic: basic},
		TopCities:    topCities,
	}, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = defaultListPage
	}
	if pageSize < 1 {
		pageSize = defaultListPageSize
	}
	return page, pageSize
}
