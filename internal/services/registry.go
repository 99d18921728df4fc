package services

import (
	"tailorix_backend/internal/email"
)

// ServiceContainer bundles every service of the application.
type ServiceContainer struct {
	AuthService         AuthService
	DiscoveryService    DiscoveryService
	TailorService       TailorService
	FavoriteService     FavoriteService
	SubscriptionService SubscriptionService
	EmailProvider       email.Provider
}
