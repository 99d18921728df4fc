package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailorix_backend/internal/services/dto"
	"tailorix_backend/pkg/apperrors"
)

func TestListTailors_RankedOrder(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := NewTailorService(repo, newFakeFavoriteRepo())

	resp, err := svc.ListTailors(context.Background(), &dto.ListTailorsRequest{}, "")
	require.NoError(t, err)

	require.NotEmpty(t, resp.Tailors)
	assert.Equal(t, int64(6), resp.Pagination.Total)

	// Subscription tier dominates: all Gold rows precede the first
	// non-Gold row.
	seenNonGold := false
	for _, tl := range resp.Tailors {
		if tl.SubscriptionTier != "Gold" {
			seenNonGold = true
		} else {
			assert.False(t, seenNonGold, "Gold tailor %s listed after a lower tier", tl.ID)
		}
	}

	// Anonymous request: no favorite flags.
	for _, tl := range resp.Tailors {
		assert.Nil(t, tl.IsFavorite)
	}
}

func TestListTailors_FavoriteAnnotation(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	favRepo := newFakeFavoriteRepo()
	_, err := favRepo.Add(context.Background(), "user-1", "basic-near")
	require.NoError(t, err)

	svc := NewTailorService(repo, favRepo)

	resp, err := svc.ListTailors(context.Background(), &dto.ListTailorsRequest{}, "user-1")
	require.NoError(t, err)

	for _, tl := range resp.Tailors {
		require.NotNil(t, tl.IsFavorite)
		assert.Equal(t, tl.ID == "basic-near", *tl.IsFavorite)
	}
}

func TestListTailors_MinRatingFilter(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := NewTailorService(repo, newFakeFavoriteRepo())

	resp, err := svc.ListTailors(context.Background(), &dto.ListTailorsRequest{
		MinRating: floatPtr(4.9),
	}, "")
	require.NoError(t, err)

	for _, tl := range resp.Tailors {
		assert.GreaterOrEqual(t, tl.Rating.Average, 4.9)
	}
	assert.Equal(t, int64(4), resp.Pagination.Total)
}

func TestSearchTailors_RequiresQuery(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := NewTailorService(repo, newFakeFavoriteRepo())

	_, err := svc.SearchTailors(context.Background(), &dto.SearchTailorsRequest{})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Zero(t, repo.totalCalls())
}

func TestGetTailorDetails(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := NewTailorService(repo, newFakeFavoriteRepo())

	view, err := svc.GetTailorDetails(context.Background(), "silver-near")
	require.NoError(t, err)
	assert.Equal(t, "Shop silver-near", view.BusinessName)
	assert.Equal(t, "Silver", view.SubscriptionTier)
	require.NotNil(t, view.Location)

	_, err = svc.GetTailorDetails(context.Background(), "nobody")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestGetTailorStats(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := NewTailorService(repo, newFakeFavoriteRepo())

	stats, err := svc.GetTailorStats(context.Background())
	require.NoError(t, err)

	// 7 active tailors (one fixture is deactivated); tier counts include
	// tailors whose subscription lapsed but whose plan name remains.
	assert.Equal(t, int64(7), stats.TotalTailors)
	assert.Equal(t, int64(4), stats.Subscription.Gold)
	assert.Equal(t, int64(1), stats.Subscription.Silver)
	assert.Equal(t, int64(1), stats.Subscription.Basic)

	require.NotEmpty(t, stats.TopCities)
	assert.Equal(t, "Bengaluru", stats.TopCities[0].City)
}

func TestGetNewlyJoined(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := NewTailorService(repo, newFakeFavoriteRepo())

	resp, err := svc.GetNewlyJoined(context.Background(), 30, 1, 10)
	require.NoError(t, err)

	// Fixtures joined yesterday; the unsubscribed tailor still shows up on
	// the new-tailors rail, the deactivated one does not.
	assert.Equal(t, int64(7), resp.Pagination.Total)

	ids := map[string]bool{}
	for _, tl := range resp.Tailors {
		ids[tl.ID] = true
	}
	assert.True(t, ids["unsubscribed"])
	assert.False(t, ids["inactive"])
}
