package dto

import (
	"tailorix_backend/internal/geo"
	"tailorix_backend/internal/models"
)

// DiscoveryStrategy names the query path that actually executed. Exposed in
// responses so callers (and tests) can assert on the code path, not just the
// shape of the result.
type DiscoveryStrategy string

const (
	StrategySpatial  DiscoveryStrategy = "spatial"
	StrategyCity     DiscoveryStrategy = "city"
	StrategyFallback DiscoveryStrategy = "fallback"
)

// NearbyTailorsRequest describes one discovery call. Coordinates take
// precedence over city when both are present.
type NearbyTailorsRequest struct {
	Latitude  *float64 `form:"lat" json:"lat"`
	Longitude *float64 `form:"lng" json:"lng"`
	RadiusKm  *float64 `form:"radius_km" json:"radiusKm" validate:"omitempty,gt=0"`
	City      string   `form:"city" json:"city"`

	Service        string   `form:"service" json:"service"`
	MinRating      *float64 `form:"min_rating" json:"minRating" validate:"omitempty,gte=0,lte=5"`
	MaxPrice       *float64 `form:"max_price" json:"maxPrice" validate:"omitempty,gte=0"`
	PickupDelivery *bool    `form:"pickup_delivery" json:"pickupDelivery"`

	Page     int `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize int `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

// RatingView is the public rating projection.
type RatingView struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// TailorView is the public projection of a tailor account. Credentials, OTP
// and reset-token fields are never part of it.
type TailorView struct {
	ID               string                   `json:"id"`
	FirstName        string                   `json:"firstName"`
	LastName         string                   `json:"lastName"`
	BusinessName     string                   `json:"businessName"`
	TailorType       string                   `json:"tailorType,omitempty"`
	Phone            string                   `json:"phone"`
	BusinessCity     string                   `json:"businessCity,omitempty"`
	BusinessState    string                   `json:"businessState,omitempty"`
	BusinessPincode  string                   `json:"businessPincode,omitempty"`
	Experience       int                      `json:"experience"`
	Specializations  []string                 `json:"specializations,omitempty"`
	Services         []models.ServiceOffering `json:"services"`
	PickupDelivery   bool                     `json:"pickupDelivery"`
	TotalOrders      int                      `json:"totalOrders"`
	Rating           RatingView               `json:"rating"`
	SubscriptionTier string                   `json:"subscriptionTier,omitempty"`
	Location         *geo.Point               `json:"location,omitempty"`
	CreatedAt        string                   `json:"createdAt"`
}

// RankedTailor is one discovery result. DistanceMeters is present only for
// the spatial strategy; IsFavorite only when a requesting user was known.
// A nil pointer means "not evaluated", which is distinct from false.
type RankedTailor struct {
	TailorView
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
	IsFavorite     *bool    `json:"isFavorite,omitempty"`
}

type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Total   int64 `json:"total"`
}

type DiscoveryResponse struct {
	Tailors    []RankedTailor    `json:"tailors"`
	Pagination Pagination        `json:"pagination"`
	Strategy   DiscoveryStrategy `json:"strategyUsed"`
}

// NewTailorView projects a user row into its public view.
func NewTailorView(u *models.User) TailorView {
	view := TailorView{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		BusinessName:     u.BusinessName,
		TailorType:       u.TailorType,
		Phone:            u.Phone,
		BusinessCity:     u.BusinessCity,
		BusinessState:    u.BusinessState,
		BusinessPincode:  u.BusinessPincode,
		Experience:       u.Experience,
		Specializations:  u.GetSpecializations(),
		Services:         u.GetServices(),
		PickupDelivery:   u.PickupDelivery,
		TotalOrders:      u.TotalOrders,
		Rating:           RatingView{Average: u.RatingAverage, Count: u.RatingCount},
		SubscriptionTier: u.SubscriptionPlanName,
		CreatedAt:        u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}

	if pt, ok := u.Location(); ok {
		view.Location = &pt
	}

	return view
}
