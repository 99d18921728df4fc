package dto

type AddFavoriteRequest struct {
	TailorID string `json:"tailorId" validate:"required"`
}

type FavoriteView struct {
	ID      string     `json:"id"`
	AddedAt string     `json:"addedAt"`
	Tailor  TailorView `json:"tailor"`
}

type FavoriteListResponse struct {
	Favorites  []FavoriteView `json:"favorites"`
	Pagination Pagination     `json:"pagination"`
}
