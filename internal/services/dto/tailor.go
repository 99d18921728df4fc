package dto

// ListTailorsRequest filters the public ranked listing.
type ListTailorsRequest struct {
	City           string   `form:"city" json:"city"`
	State          string   `form:"state" json:"state"`
	Service        string   `form:"service" json:"service"`
	MinRating      *float64 `form:"min_rating" json:"minRating" validate:"omitempty,gte=0,lte=5"`
	MaxPrice       *float64 `form:"max_price" json:"maxPrice" validate:"omitempty,gte=0"`
	PickupDelivery *bool    `form:"pickup_delivery" json:"pickupDelivery"`
	SortBy         string   `form:"sort_by" json:"sortBy" validate:"omitempty,oneof=ranked rating experience orders newest"`

	Page     int `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize int `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

// SearchTailorsRequest is the free-text search.
type SearchTailorsRequest struct {
	Query   string `form:"q" json:"q" validate:"required"`
	City    string `form:"city" json:"city"`
	Pincode string `form:"pincode" json:"pincode"`

	Page     int `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize int `form:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
}

type TailorListResponse struct {
	Tailors    []RankedTailor `json:"tailors"`
	Pagination Pagination     `json:"pagination"`
}

type TierBreakdown struct {
	Gold   int64 `json:"gold"`
	Silver int64 `json:"silver"`
	Basic  int64 `json:"basic"`
}

type TailorStats struct {
	TotalTailors int64         `json:"totalTailors"`
	NewTailors   int64         `json:"newTailors"`
	Subscription TierBreakdown `json:"subscriptionBreakdown"`
	TopCities    []CityStat    `json:"topCities"`
}

type CityStat struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}
