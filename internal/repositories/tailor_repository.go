package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"tailorix_backend/internal/algorithms"
	"tailorix_backend/internal/geo"
	"tailorix_backend/internal/models"
)

var (
	ErrTailorNotFound = errors.New("tailor not found")

	// ErrSpatialQuery marks a failure of the spatial query path. The
	// discovery service checks for it with errors.Is to trigger the
	// non-spatial fallback.
	ErrSpatialQuery = errors.New("spatial query failed")
)

// TailorSearchCriteria are the optional listing filters. Nil / empty fields
// impose no constraint; provided fields combine with AND on top of the
// discoverable base predicate.
type TailorSearchCriteria struct {
	Query          string // free text: name, business name, specializations, service names
	City           string
	State          string
	Pincode        string
	Service        string
	MinRating      *float64
	MaxPrice       *float64
	PickupDelivery *bool
}

// TailorWithDistance annotates a tailor row with the computed great-circle
// distance from the query point.
type TailorWithDistance struct {
	models.User
	DistanceMeters float64 `gorm:"column:distance_meters"`
}

// SortSpec selects the ordering of a non-spatial listing query.
type SortSpec string

const (
	SortRanked     SortSpec = "ranked" // tier priority, then rating
	SortRating     SortSpec = "rating"
	SortExperience SortSpec = "experience"
	SortOrders     SortSpec = "orders"
	SortNewest     SortSpec = "newest"
)

// CityCount is one row of the top-cities stat.
type CityCount struct {
	City  string `json:"city" gorm:"column:business_city"`
	Count int64  `json:"count"`
}

type TailorRepository interface {
	// Spatial path
	FindDiscoverableNear(ctx context.Context, pt geo.Point, radiusMeters float64, criteria TailorSearchCriteria, skip, limit int) ([]TailorWithDistance, error)
	CountDiscoverableNear(ctx context.Context, pt geo.Point, radiusMeters float64, criteria TailorSearchCriteria) (int64, error)

	// Non-spatial / fallback path
	FindDiscoverable(ctx context.Context, criteria TailorSearchCriteria, sort SortSpec, skip, limit int) ([]models.User, error)
	CountDiscoverable(ctx context.Context, criteria TailorSearchCriteria) (int64, error)

	// Details and stats
	FindActiveTailorByID(ctx context.Context, id string) (*models.User, error)
	FindNewSince(ctx context.Context, since time.Time, skip, limit int) ([]models.User, int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
	CountByTier(ctx context.Context, tier models.SubscriptionTier) (int64, error)
	TopCities(ctx context.Context, limit int) ([]CityCount, error)
}

type TailorRepositoryImpl struct {
	db *gorm.DB
}

func NewTailorRepository(db *gorm.DB) TailorRepository {
	return &TailorRepositoryImpl{db: db}
}

// haversineSQL computes the great-circle distance in meters between the
// stored (latitude, longitude) and a query point. Placeholders: lat, lat,
// lng (in that order). Mirrors geo.DistanceMeters.
const haversineSQL = `2 * 6371000 * asin(least(1.0, sqrt(` +
	`power(sin(radians(latitude - ?) / 2), 2) + ` +
	`cos(radians(?)) * cos(radians(latitude)) * ` +
	`power(sin(radians(longitude - ?) / 2), 2))))`

// validLocationSQL excludes rows whose stored coordinates are absent or out
// of range; such tailors are treated as having no location at all.
const validLocationSQL = `latitude IS NOT NULL AND longitude IS NOT NULL ` +
	`AND latitude BETWEEN -90 AND 90 AND longitude BETWEEN -180 AND 180`

// discoverableBase restricts any listing query to active, subscribed tailors.
func (r *TailorRepositoryImpl) discoverableBase(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.UserRoleTailor).
		Where("is_active = ?", true).
		Where("subscription_active = ?", true)
}

// applyCriteria chains the optional filters onto a base query.
func applyCriteria(query *gorm.DB, c TailorSearchCriteria) *gorm.DB {
	if c.Query != "" {
		search := "%" + c.Query + "%"
		query = query.Where(
			`first_name ILIKE ? OR last_name ILIKE ? OR business_name ILIKE ? `+
				`OR specializations::text ILIKE ? `+
				`OR EXISTS (SELECT 1 FROM jsonb_array_elements(services) AS svc WHERE svc->>'name' ILIKE ?)`,
			search, search, search, search, search,
		)
	}

	if c.City != "" {
		query = query.Where("business_city ILIKE ?", "%"+c.City+"%")
	}

	if c.State != "" {
		query = query.Where("business_state ILIKE ?", "%"+c.State+"%")
	}

	if c.Pincode != "" {
		query = query.Where("business_pincode = ?", c.Pincode)
	}

	if c.Service != "" {
		query = query.Where(
			`EXISTS (SELECT 1 FROM jsonb_array_elements(services) AS svc WHERE svc->>'name' ILIKE ?)`,
			"%"+c.Service+"%",
		)
	}

	if c.MinRating != nil {
		query = query.Where("rating_average >= ?", *c.MinRating)
	}

	if c.MaxPrice != nil {
		query = query.Where(
			`EXISTS (SELECT 1 FROM jsonb_array_elements(services) AS svc WHERE (svc->>'price')::numeric <= ?)`,
			*c.MaxPrice,
		)
	}

	if c.PickupDelivery != nil {
		query = query.Where("pickup_delivery = ?", *c.PickupDelivery)
	}

	return query
}

// rankedOrderSQL is the canonical listing order: subscription tier first,
// then rating. Trailing keys keep pagination stable across pages.
func rankedOrderSQL() string {
	return algorithms.TierPriorityCaseSQL("subscription_plan_name") +
		" ASC, rating_average DESC, rating_count DESC, created_at DESC"
}

func orderSQL(sort SortSpec) string {
	switch sort {
	case SortRating:
		return "rating_average DESC, rating_count DESC, created_at DESC"
	case SortExperience:
		return "experience DESC, created_at DESC"
	case SortOrders:
		return "total_orders DESC, created_at DESC"
	case SortNewest:
		return "created_at DESC"
	default:
		return rankedOrderSQL()
	}
}

func (r *TailorRepositoryImpl) FindDiscoverableNear(ctx context.Context, pt geo.Point, radiusMeters float64, criteria TailorSearchCriteria, skip, limit int) ([]TailorWithDistance, error) {
	var rows []TailorWithDistance

	query := r.discoverableBase(ctx).
		Select("*, "+haversineSQL+" AS distance_meters", pt.Latitude, pt.Latitude, pt.Longitude).
		Where(validLocationSQL).
		Where(haversineSQL+" <= ?", pt.Latitude, pt.Latitude, pt.Longitude, radiusMeters)

	query = applyCriteria(query, criteria)

	err := query.
		Order(rankedOrderSQL()).
		Offset(skip).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpatialQuery, err)
	}

	return rows, nil
}

func (r *TailorRepositoryImpl) CountDiscoverableNear(ctx context.Context, pt geo.Point, radiusMeters float64, criteria TailorSearchCriteria) (int64, error) {
	// Same radius predicate as the fetch; count and page can never disagree
	// on what "within radius" means.
	query := r.discoverableBase(ctx).
		Where(validLocationSQL).
		Where(haversineSQL+" <= ?", pt.Latitude, pt.Latitude, pt.Longitude, radiusMeters)

	query = applyCriteria(query, criteria)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSpatialQuery, err)
	}
	return total, nil
}

func (r *TailorRepositoryImpl) FindDiscoverable(ctx context.Context, criteria TailorSearchCriteria, sort SortSpec, skip, limit int) ([]models.User, error) {
	var tailors []models.User

	query := applyCriteria(r.discoverableBase(ctx), criteria)

	err := query.
		Order(orderSQL(sort)).
		Offset(skip).
		Limit(limit).
		Find(&tailors).Error
	return tailors, err
}

func (r *TailorRepositoryImpl) CountDiscoverable(ctx context.Context, criteria TailorSearchCriteria) (int64, error) {
	var total int64
	err := applyCriteria(r.discoverableBase(ctx), criteria).Count(&total).Error
	return total, err
}

func (r *TailorRepositoryImpl) FindActiveTailorByID(ctx context.Context, id string) (*models.User, error) {
	var tailor models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("role = ?", models.UserRoleTailor).
		Where("is_active = ?", true).
		First(&tailor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTailorNotFound
		}
		return nil, err
	}
	return &tailor, nil
}

// FindNewSince lists recently joined active tailors. Subscription state is
// deliberately not required here: the "new tailors" rail also shows tailors
// who have not activated a plan yet.
func (r *TailorRepositoryImpl) FindNewSince(ctx context.Context, since time.Time, skip, limit int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.UserRoleTailor).
		Where("is_active = ?", true).
		Where("created_at >= ?", since)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tailors []models.User
	err := base.
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&tailors).Error
	return tailors, total, err
}

func (r *TailorRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.UserRoleTailor, true).
		Count(&total).Error
	return total, err
}

func (r *TailorRepositoryImpl) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.UserRoleTailor, true).
		Where("created_at >= ?", since).
		Count(&total).Error
	return total, err
}

func (r *TailorRepositoryImpl) CountByTier(ctx context.Context, tier models.SubscriptionTier) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.UserRoleTailor, true).
		Where("subscription_plan_name = ?", string(tier)).
		Count(&total).Error
	return total, err
}

func (r *TailorRepositoryImpl) TopCities(ctx context.Context, limit int) ([]CityCount, error) {
	var rows []CityCount
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("business_city, COUNT(*) AS count").
		Where("role = ? AND is_active = ?", models.UserRoleTailor, true).
		Where("business_city <> ''").
		Group("business_city").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
