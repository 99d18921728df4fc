package dto

type ActivateSubscriptionRequest struct {
	PlanID string `json:"planId" validate:"required"`
}

type PlanView struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DurationDays int     `json:"durationDays"`
}

type SubscriptionStatusView struct {
	Active    bool   `json:"active"`
	PlanName  string `json:"planName,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}
