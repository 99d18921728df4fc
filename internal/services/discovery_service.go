package services

import (
	"context"

	"tailorix_backend/internal/geo"
	"tailorix_backend/internal/logger"
	"tailorix_backend/internal/models"
	"tailorix_backend/internal/repositories"
	"tailorix_backend/internal/services/dto"
	"tailorix_backend/pkg/apperrors"
)

const (
	defaultDiscoveryPage     = 1
	defaultDiscoveryPageSize = 10
)

// DiscoveryService is the nearby-tailor discovery engine: it selects a query
// strategy (spatial or city), ranks by subscription tier and rating,
// paginates, and degrades to a non-spatial query when the spatial path
// fails. One implementation serves every listing endpoint that needs
// ranked, optionally personalized results.
type DiscoveryService interface {
	DiscoverTailors(ctx context.Context, req *dto.NearbyTailorsRequest, requestingUserID string) (*dto.DiscoveryResponse, error)
}

type discoveryService struct {
	tailorRepo      repositories.TailorRepository
	favoriteRepo    repositories.FavoriteRepository
	defaultRadiusKm float64
}

func NewDiscoveryService(
	tailorRepo repositories.TailorRepository,
	favoriteRepo repositories.FavoriteRepository,
	defaultRadiusKm float64,
) DiscoveryService {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 2
	}
	return &discoveryService{
		tailorRepo:      tailorRepo,
		favoriteRepo:    favoriteRepo,
		defaultRadiusKm: defaultRadiusKm,
	}
}

func (s *discoveryService) DiscoverTailors(ctx context.Context, req *dto.NearbyTailorsRequest, requestingUserID string) (*dto.DiscoveryResponse, error) {
	page := req.Page
	if page < 1 {
		page = defaultDiscoveryPage
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultDiscoveryPageSize
	}
	skip := (page - 1) * pageSize

	criteria := repositories.TailorSearchCriteria{
		Service:        req.Service,
		MinRating:      req.MinRating,
		MaxPrice:       req.MaxPrice,
		PickupDelivery: req.PickupDelivery,
	}

	// Strategy selection. Coordinates win over city when both are present;
	// neither is a client error before any store call is made.
	var response *dto.DiscoveryResponse
	var err error

	switch {
	case req.Latitude != nil && req.Longitude != nil:
		pt := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if !pt.Valid() {
			details := map[string]interface{}{}
			if !geo.ValidLatitude(pt.Latitude) {
				details["lat"] = pt.Latitude
			}
			if !geo.ValidLongitude(pt.Longitude) {
				details["lng"] = pt.Longitude
			}
			return nil, apperrors.ErrInvalidCoordinates(details)
		}

		radiusKm := s.defaultRadiusKm
		if req.RadiusKm != nil && *req.RadiusKm > 0 {
			radiusKm = *req.RadiusKm
		}

		response, err = s.discoverSpatial(ctx, pt, radiusKm*1000, criteria, skip, page, pageSize)

	case req.City != "":
		criteria.City = req.City
		response, err = s.discoverByCity(ctx, criteria, skip, page, pageSize)

	default:
		return nil, apperrors.ErrMissingLocationCriteria()
	}

	if err != nil {
		return nil, err
	}

	if err := s.annotateFavorites(ctx, response.Tailors, requestingUserID); err != nil {
		return nil, err
	}

	return response, nil
}

// discoverSpatial runs the radius query; on a spatial failure it degrades
// once to the unranked-by-distance query over the same criteria.
func (s *discoveryService) discoverSpatial(ctx context.Context, pt geo.Point, radiusMeters float64, criteria repositories.TailorSearchCriteria, skip, page, pageSize int) (*dto.DiscoveryResponse, error) {
	rows, err := s.tailorRepo.FindDiscoverableNear(ctx, pt, radiusMeters, criteria, skip, pageSize)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSpatialQuery) {
			return s.discoverFallback(ctx, criteria, skip, page, pageSize, err)
		}
		return nil, err
	}

	total, err := s.tailorRepo.CountDiscoverableNear(ctx, pt, radiusMeters, criteria)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSpatialQuery) {
			return s.discoverFallback(ctx, criteria, skip, page, pageSize, err)
		}
		return nil, err
	}

	tailors := make([]dto.RankedTailor, 0, len(rows))
	for i := range rows {
		distance := rows[i].DistanceMeters
		tailors = append(tailors, dto.RankedTailor{
			TailorView:     dto.NewTailorView(&rows[i].User),
			DistanceMeters: &distance,
		})
	}

	return &dto.DiscoveryResponse{
		Tailors:    tailors,
		Pagination: buildPagination(page, pageSize, total),
		Strategy:   dto.StrategySpatial,
	}, nil
}

func (s *discoveryService) discoverByCity(ctx context.Context, criteria repositories.TailorSearchCriteria, skip, page, pageSize int) (*dto.DiscoveryResponse, error) {
	rows, err := s.tailorRepo.FindDiscoverable(ctx, criteria, repositories.SortRanked, skip, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.tailorRepo.CountDiscoverable(ctx, criteria)
	if err != nil {
		return nil, err
	}

	return &dto.DiscoveryResponse{
		Tailors:    rankedViews(rows),
		Pagination: buildPagination(page, pageSize, total),
		Strategy:   dto.StrategyCity,
	}, nil
}

// discoverFallback re-executes the query without the radius constraint. It
// runs at most once per call; a second failure escalates as unavailable.
// The degradation is logged so a broken spatial index is visible to
// operators rather than silently papered over.
func (s *discoveryService) discoverFallback(ctx context.Context, criteria repositories.TailorSearchCriteria, skip, page, pageSize int, cause error) (*dto.DiscoveryResponse, error) {
	logger.Degradation(ctx, "discovery", string(dto.StrategySpatial), string(dto.StrategyFallback), cause)

	rows, err := s.tailorRepo.FindDiscoverable(ctx, criteria, repositories.SortRanked, skip, pageSize)
	if err != nil {
		return nil, apperrors.ErrDiscoveryUnavailable(err)
	}

	total, err := s.tailorRepo.CountDiscoverable(ctx, criteria)
	if err != nil {
		return nil, apperrors.ErrDiscoveryUnavailable(err)
	}

	return &dto.DiscoveryResponse{
		Tailors:    rankedViews(rows),
		Pagination: buildPagination(page, pageSize, total),
		Strategy:   dto.StrategyFallback,
	}, nil
}

// annotateFavorites overlays the requesting user's favorite set. With no
// user it does nothing: IsFavorite stays nil and drops out of the JSON,
// which is distinct from an evaluated false.
func (s *discoveryService) annotateFavorites(ctx context.Context, tailors []dto.RankedTailor, requestingUserID string) error {
	if requestingUserID == "" {
		return nil
	}

	favoriteIDs, err := s.favoriteRepo.FindFavoriteTailorIDs(ctx, requestingUserID)
	if err != nil {
		return err
	}

	for i := range tailors {
		_, isFavorite := favoriteIDs[tailors[i].ID]
		flag := isFavorite
		tailors[i].IsFavorite = &flag
	}
	return nil
}

func rankedViews(rows []models.User) []dto.RankedTailor {
	tailors := make([]dto.RankedTailor, 0, len(rows))
	for i := range rows {
		tailors = append(tailors, dto.RankedTailor{TailorView: dto.NewTailorView(&rows[i])})
	}
	return tailors
}

func buildPagination(page, pageSize int, total int64) dto.Pagination {
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return dto.Pagination{
		Current: page,
		Pages:   pages,
		Total:   total,
	}
}
