package dto

import "tailorix_backend/internal/models"

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Phone     string `json:"phone" validate:"required"`
	Role      string `json:"role" validate:"required,user_role"`
	Gender    string `json:"gender" validate:"omitempty,oneof=Male Female Other"`

	// Customer address
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`

	// Tailor business fields
	BusinessName    string                   `json:"businessName"`
	BusinessCity    string                   `json:"businessCity"`
	BusinessState   string                   `json:"businessState"`
	BusinessPincode string                   `json:"businessPincode"`
	TailorType      string                   `json:"tailorType"`
	Experience      int                      `json:"experience" validate:"omitempty,min=0"`
	Specializations []string                 `json:"specializations"`
	Services        []models.ServiceOffering `json:"services"`
	PickupDelivery  bool                     `json:"pickupDelivery"`
	Latitude        *float64                 `json:"lat"`
	Longitude       *float64                 `json:"lng"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserView struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}
