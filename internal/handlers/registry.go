package handlers

// AppHandlers bundles every handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	DiscoveryHandler    *DiscoveryHandler
	TailorHandler       *TailorHandler
	FavoriteHandler     *FavoriteHandler
	SubscriptionHandler *SubscriptionHandler
}
