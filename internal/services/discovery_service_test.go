package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailorix_backend/internal/algorithms"
	"tailorix_backend/internal/geo"
	"tailorix_backend/internal/models"
	"tailorix_backend/internal/repositories"
	"tailorix_backend/internal/services/dto"
	"tailorix_backend/pkg/apperrors"
)

// ---------------------------------------------------------------------------
// In-memory fakes
// ---------------------------------------------------------------------------

// fakeTailorRepo reimplements the repository contract over a slice so the
// service can be exercised without a database. Ranking reuses the same
// comparison the SQL ORDER BY is generated from.
type fakeTailorRepo struct {
	tailors []models.User

	failSpatial bool // spatial queries return ErrSpatialQuery
	failAll     bool // every query fails

	spatialCalls    int
	nonSpatialCalls int
}

func (f *fakeTailorRepo) totalCalls() int {
	return f.spatialCalls + f.nonSpatialCalls
}

func (f *fakeTailorRepo) discoverable(criteria repositories.TailorSearchCriteria) []models.User {
	var out []models.User
	for _, u := range f.tailors {
		if !u.IsDiscoverable() {
			continue
		}
		if criteria.City != "" && !strings.Contains(strings.ToLower(u.BusinessCity), strings.ToLower(criteria.City)) {
			continue
		}
		if criteria.MinRating != nil && u.RatingAverage < *criteria.MinRating {
			continue
		}
		if criteria.PickupDelivery != nil && u.PickupDelivery != *criteria.PickupDelivery {
			continue
		}
		if criteria.Service != "" {
			match := false
			for _, svc := range u.GetServices() {
				if strings.Contains(strings.ToLower(svc.Name), strings.ToLower(criteria.Service)) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		if criteria.MaxPrice != nil {
			match := false
			for _, svc := range u.GetServices() {
				if svc.Price <= *criteria.MaxPrice {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, u)
	}
	return out
}

func sortRanked(tailors []models.User) {
	sort.SliceStable(tailors, func(i, j int) bool {
		return algorithms.LessRanked(
			algorithms.Rankable{PlanName: tailors[i].SubscriptionPlanName, RatingAverage: tailors[i].RatingAverage, RatingCount: tailors[i].RatingCount},
			algorithms.Rankable{PlanName: tailors[j].SubscriptionPlanName, RatingAverage: tailors[j].RatingAverage, RatingCount: tailors[j].RatingCount},
		)
	})
}

func paginate(tailors []models.User, skip, limit int) []models.User {
	if skip >= len(tailors) {
		return nil
	}
	end := skip + limit
	if end > len(tailors) {
		end = len(tailors)
	}
	return tailors[skip:end]
}

func (f *fakeTailorRepo) withinRadius(pt geo.Point, radiusMeters float64, criteria repositories.TailorSearchCriteria) []repositories.TailorWithDistance {
	var out []repositories.TailorWithDistance
	for _, u := range f.discoverable(criteria) {
		loc, ok := u.Location()
		if !ok {
			continue
		}
		d := geo.DistanceMeters(pt, loc)
		if d <= radiusMeters {
			out = append(out, repositories.TailorWithDistance{User: u, DistanceMeters: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return algorithms.LessRanked(
			algorithms.Rankable{PlanName: out[i].SubscriptionPlanName, RatingAverage: out[i].RatingAverage, RatingCount: out[i].RatingCount},
			algorithms.Rankable{PlanName: out[j].SubscriptionPlanName, RatingAverage: out[j].RatingAverage, RatingCount: out[j].RatingCount},
		)
	})
	return out
}

func (f *fakeTailorRepo) FindDiscoverableNear(ctx context.Context, pt geo.Point, radiusMeters float64, criteria repositories.TailorSearchCriteria, skip, limit int) ([]repositories.TailorWithDistance, error) {
	f.spatialCalls++
	if f.failSpatial || f.failAll {
		return nil, fmt.Errorf("%w: index corrupted", repositories.ErrSpatialQuery)
	}

	rows := f.withinRadius(pt, radiusMeters, criteria)
	if skip >= len(rows) {
		return nil, nil
	}
	end := skip + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[skip:end], nil
}

func (f *fakeTailorRepo) CountDiscoverableNear(ctx context.Context, pt geo.Point, radiusMeters float64, criteria repositories.TailorSearchCriteria) (int64, error) {
	f.spatialCalls++
	if f.failSpatial || f.failAll {
		return 0, fmt.Errorf("%w: index corrupted", repositories.ErrSpatialQuery)
	}
	return int64(len(f.withinRadius(pt, radiusMeters, criteria))), nil
}

func (f *fakeTailorRepo) FindDiscoverable(ctx context.Context, criteria repositories.TailorSearchCriteria, sortSpec repositories.SortSpec, skip, limit int) ([]models.User, error) {
	f.nonSpatialCalls++
	if f.failAll {
		return nil, fmt.Errorf("database gone")
	}
	rows := f.discoverable(criteria)
	sortRanked(rows)
	return paginate(rows, skip, limit), nil
}

func (f *fakeTailorRepo) CountDiscoverable(ctx context.Context, criteria repositories.TailorSearchCriteria) (int64, error) {
	f.nonSpatialCalls++
	if f.failAll {
		return 0, fmt.Errorf("database gone")
	}
	return int64(len(f.discoverable(criteria))), nil
}

func (f *fakeTailorRepo) FindActiveTailorByID(ctx context.Context, id string) (*models.User, error) {
	f.nonSpatialCalls++
	for i := range f.tailors {
		u := f.tailors[i]
		if u.ID == id && u.Role == models.UserRoleTailor && u.IsActive {
			return &u, nil
		}
	}
	return nil, repositories.ErrTailorNotFound
}

func (f *fakeTailorRepo) FindNewSince(ctx context.Context, since time.Time, skip, limit int) ([]models.User, int64, error) {
	f.nonSpatialCalls++
	var rows []models.User
	for _, u := range f.tailors {
		if u.Role == models.UserRoleTailor && u.IsActive && !u.CreatedAt.Before(since) {
			rows = append(rows, u)
		}
	}
	total := int64(len(rows))
	return paginate(rows, skip, limit), total, nil
}

func (f *fakeTailorRepo) CountActive(ctx context.Context) (int64, error) {
	f.nonSpatialCalls++
	var n int64
	for _, u := range f.tailors {
		if u.Role == models.UserRoleTailor && u.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeTailorRepo) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	f.nonSpatialCalls++
	var n int64
	for _, u := range f.tailors {
		if u.Role == models.UserRoleTailor && u.IsActive && !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTailorRepo) CountByTier(ctx context.Context, tier models.SubscriptionTier) (int64, error) {
	f.nonSpatialCalls++
	var n int64
	for _, u := range f.tailors {
		if u.Role == models.UserRoleTailor && u.IsActive && u.SubscriptionPlanName == string(tier) {
			n++
		}
	}
	return n, nil
}

func (f *fakeTailorRepo) TopCities(ctx context.Context, limit int) ([]repositories.CityCount, error) {
	f.nonSpatialCalls++
	counts := map[string]int64{}
	for _, u := range f.tailors {
		if u.Role == models.UserRoleTailor && u.IsActive && u.BusinessCity != "" {
			counts[u.BusinessCity]++
		}
	}
	var rows []repositories.CityCount
	for city, n := range counts {
		rows = append(rows, repositories.CityCount{City: city, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type fakeFavoriteRepo struct {
	favorites map[string]map[string]models.Favorite // userID -> tailorID -> row
	tailors   map[string]*models.User               // preloaded on ListByUser; inactive rows load nil
	calls     int
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{
		favorites: map[string]map[string]models.Favorite{},
		tailors:   map[string]*models.User{},
	}
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID, tailorID string) (*models.Favorite, error) {
	f.calls++
	if _, ok := f.favorites[userID][tailorID]; ok {
		return nil, repositories.ErrAlreadyFavorite
	}
	if f.favorites[userID] == nil {
		f.favorites[userID] = map[string]models.Favorite{}
	}
	fav := models.Favorite{UserID: userID, TailorID: tailorID, AddedAt: time.Now()}
	fav.ID = fmt.Sprintf("fav-%s-%s", userID, tailorID)
	f.favorites[userID][tailorID] = fav
	return &fav, nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID, tailorID string) error {
	f.calls++
	if _, ok := f.favorites[userID][tailorID]; !ok {
		return repositories.ErrFavoriteNotFound
	}
	delete(f.favorites[userID], tailorID)
	return nil
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID string, skip, limit int) ([]models.Favorite, int64, error) {
	f.calls++
	var rows []models.Favorite
	for _, fav := range f.favorites[userID] {
		rows = append(rows, fav)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TailorID < rows[j].TailorID })
	for i := range rows {
		if u, ok := f.tailors[rows[i].TailorID]; ok && u.IsActive {
			rows[i].Tailor = u
		}
	}
	total := int64(len(rows))
	if skip >= len(rows) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[skip:end], total, nil
}

func (f *fakeFavoriteRepo) FindFavoriteTailorIDs(ctx context.Context, userID string) (map[string]struct{}, error) {
	f.calls++
	ids := map[string]struct{}{}
	for tailorID := range f.favorites[userID] {
		ids[tailorID] = struct{}{}
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

// Bengaluru city center; fixture tailors are placed relative to it.
var queryPoint = geo.Point{Latitude: 12.9716, Longitude: 77.5946}

func tailorAt(id, plan string, rating float64, lat, lng float64) models.User {
	u := models.User{
		FirstName:            "Tailor",
		LastName:             id,
		Email:                id + "@example.com",
		Role:                 models.UserRoleTailor,
		IsActive:             true,
		BusinessName:         "Shop " + id,
		BusinessCity:         "Bengaluru",
		Latitude:             &lat,
		Longitude:            &lng,
		RatingAverage:        rating,
		RatingCount:          10,
		SubscriptionActive:   true,
		SubscriptionPlanName: plan,
	}
	u.ID = id
	u.CreatedAt = time.Now().Add(-24 * time.Hour)
	return u
}

// offsetNorth returns a point roughly meters north of the query point.
// One degree of latitude is ~111.195 km.
func offsetNorth(meters float64) (float64, float64) {
	return queryPoint.Latitude + meters/111195.0, queryPoint.Longitude
}

func fixtureTailors() []models.User {
	lat1, lng1 := offsetNorth(500)
	lat2, lng2 := offsetNorth(1200)
	lat3, lng3 := offsetNorth(1500)
	lat4, lng4 := offsetNorth(3000) // outside the default 2km radius
	lat5, lng5 := offsetNorth(800)

	silverNear := tailorAt("silver-near", "Silver", 4.9, lat1, lng1)
	goldFar := tailorAt("gold-far", "Gold", 3.5, lat2, lng2)
	basicNear := tailorAt("basic-near", "Basic", 5.0, lat3, lng3)
	goldOutside := tailorAt("gold-outside", "Gold", 5.0, lat4, lng4)
	unknownPlan := tailorAt("no-plan", "", 4.8, lat5, lng5)

	inactive := tailorAt("inactive", "Gold", 5.0, lat1, lng1)
	inactive.IsActive = false

	unsubscribed := tailorAt("unsubscribed", "Gold", 5.0, lat1, lng1)
	unsubscribed.SubscriptionActive = false

	noLocation := tailorAt("no-location", "Gold", 5.0, 0, 0)
	noLocation.Latitude = nil
	noLocation.Longitude = nil

	return []models.User{silverNear, goldFar, basicNear, goldOutside, unknownPlan, inactive, unsubscribed, noLocation}
}

func newDiscovery(tailorRepo *fakeTailorRepo, favoriteRepo *fakeFavoriteRepo) DiscoveryService {
	return NewDiscoveryService(tailorRepo, favoriteRepo, 2)
}

func floatPtr(v float64) *float64 { return &v }

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestDiscoverTailors_SpatialRankedWithinRadius(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, dto.StrategySpatial, resp.Strategy)

	// Only discoverable tailors inside the default 2km radius, tier first:
	// Gold, then the higher-rated Silver, then Basic, then the tailor with
	// no recognized plan last despite its rating.
	var ids []string
	for _, tl := range resp.Tailors {
		ids = append(ids, tl.ID)
	}
	assert.Equal(t, []string{"gold-far", "silver-near", "basic-near", "no-plan"}, ids)
	assert.Equal(t, int64(4), resp.Pagination.Total)

	// Every spatial result carries its computed distance.
	for _, tl := range resp.Tailors {
		require.NotNil(t, tl.DistanceMeters, "tailor %s is missing a distance", tl.ID)
		assert.LessOrEqual(t, *tl.DistanceMeters, 2000.0)
	}
	assert.InDelta(t, 1200, *resp.Tailors[0].DistanceMeters, 5)
}

func TestDiscoverTailors_ExplicitRadiusWidensResults(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
		RadiusKm:  floatPtr(5),
	}, "")
	require.NoError(t, err)

	// gold-outside sits at ~3km; the 5km radius picks it up and its Gold
	// tier with the better rating puts it first.
	require.Equal(t, int64(5), resp.Pagination.Total)
	assert.Equal(t, "gold-outside", resp.Tailors[0].ID)
}

func TestDiscoverTailors_CityStrategy(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		City: "bengaluru",
	}, "")
	require.NoError(t, err)

	assert.Equal(t, dto.StrategyCity, resp.Strategy)

	// City match is case-insensitive, ranking still applies, and the
	// location-less Gold tailor is reachable on this path.
	assert.Equal(t, int64(6), resp.Pagination.Total)
	require.NotEmpty(t, resp.Tailors)
	assert.Equal(t, "Gold", resp.Tailors[0].SubscriptionTier)
	var cityIDs []string
	for _, tl := range resp.Tailors {
		cityIDs = append(cityIDs, tl.ID)
	}
	assert.Contains(t, cityIDs, "no-location")

	// No distances on a non-spatial strategy.
	for _, tl := range resp.Tailors {
		assert.Nil(t, tl.DistanceMeters)
	}
}

func TestDiscoverTailors_CoordinatesWinOverCity(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
		City:      "Mumbai", // ignored: coordinates take precedence
	}, "")
	require.NoError(t, err)

	assert.Equal(t, dto.StrategySpatial, resp.Strategy)
	assert.Equal(t, int64(4), resp.Pagination.Total)
}

func TestDiscoverTailors_MissingLocationCriteria(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	favRepo := newFakeFavoriteRepo()
	svc := newDiscovery(repo, favRepo)

	_, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{}, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMissingLocationCriteria, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)

	// The request must be rejected before any store access.
	assert.Zero(t, repo.totalCalls())
	assert.Zero(t, favRepo.calls)
}

func TestDiscoverTailors_LatitudeOnlyIsMissingCriteria(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	// A lone latitude is not a usable location; without a city this is the
	// same as providing nothing.
	_, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude: floatPtr(queryPoint.Latitude),
	}, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeMissingLocationCriteria, appErr.Code)
	assert.Zero(t, repo.totalCalls())
}

func TestDiscoverTailors_InvalidCoordinates(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	_, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(95),
		Longitude: floatPtr(77.5946),
	}, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidCoordinates, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)
	assert.Zero(t, repo.totalCalls())
}

func TestDiscoverTailors_Idempotent(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	req := &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
	}

	first, err := svc.DiscoverTailors(context.Background(), req, "")
	require.NoError(t, err)
	second, err := svc.DiscoverTailors(context.Background(), req, "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDiscoverTailors_PaginationConsistency(t *testing.T) {
	t.Parallel()

	// 23 tailors inside the radius with distinct ranking keys.
	var tailors []models.User
	plans := []string{"Gold", "Silver", "Basic", ""}
	for i := 0; i < 23; i++ {
		lat, lng := queryPoint.Latitude+float64(i)*0.001, queryPoint.Longitude
		u := tailorAt(fmt.Sprintf("t%02d", i), plans[i%len(plans)], float64(i%50)/10, lat, lng)
		u.RatingCount = i
		tailors = append(tailors, u)
	}
	repo := &fakeTailorRepo{tailors: tailors}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	for _, pageSize := range []int{1, 5, 10} {
		seen := map[string]int{}
		page := 1
		var pages int
		for {
			resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
				Latitude:  floatPtr(queryPoint.Latitude),
				Longitude: floatPtr(queryPoint.Longitude),
				RadiusKm:  floatPtr(10),
				Page:      page,
				PageSize:  pageSize,
			}, "")
			require.NoError(t, err)

			assert.Equal(t, int64(23), resp.Pagination.Total, "pageSize %d", pageSize)
			assert.Equal(t, page, resp.Pagination.Current)
			pages = resp.Pagination.Pages

			if len(resp.Tailors) == 0 {
				break
			}
			assert.LessOrEqual(t, len(resp.Tailors), pageSize)
			for _, tl := range resp.Tailors {
				seen[tl.ID]++
			}
			page++
		}

		// Every tailor appears exactly once across the pages.
		assert.Len(t, seen, 23, "pageSize %d", pageSize)
		for id, n := range seen {
			assert.Equal(t, 1, n, "tailor %s duplicated at pageSize %d", id, pageSize)
		}

		wantPages := 23 / pageSize
		if 23%pageSize != 0 {
			wantPages++
		}
		assert.Equal(t, wantPages, pages, "pageSize %d", pageSize)
	}
}

func TestDiscoverTailors_FavoriteAnnotation(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	favRepo := newFakeFavoriteRepo()
	_, err := favRepo.Add(context.Background(), "user-1", "silver-near")
	require.NoError(t, err)
	_, err = favRepo.Add(context.Background(), "user-1", "no-plan")
	require.NoError(t, err)

	svc := newDiscovery(repo, favRepo)

	resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
	}, "user-1")
	require.NoError(t, err)

	favorited := map[string]bool{}
	for _, tl := range resp.Tailors {
		require.NotNil(t, tl.IsFavorite, "tailor %s has no favorite flag", tl.ID)
		favorited[tl.ID] = *tl.IsFavorite
	}
	assert.True(t, favorited["silver-near"])
	assert.True(t, favorited["no-plan"])
	assert.False(t, favorited["gold-far"])
	assert.False(t, favorited["basic-near"])
}

func TestDiscoverTailors_AnonymousHasNoFavoriteFlag(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors()}
	favRepo := newFakeFavoriteRepo()
	svc := newDiscovery(repo, favRepo)

	resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
	}, "")
	require.NoError(t, err)

	for _, tl := range resp.Tailors {
		assert.Nil(t, tl.IsFavorite)
	}
	assert.Zero(t, favRepo.calls)
}

func TestDiscoverTailors_SpatialFailureFallsBack(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors(), failSpatial: true}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, dto.StrategyFallback, resp.Strategy)
	assert.GreaterOrEqual(t, repo.nonSpatialCalls, 1)

	// Fallback ignores the radius: every discoverable tailor is eligible,
	// still ranked, with no distances.
	assert.Equal(t, int64(6), resp.Pagination.Total)
	require.NotEmpty(t, resp.Tailors)
	assert.Equal(t, "Gold", resp.Tailors[0].SubscriptionTier)
	for _, tl := range resp.Tailors {
		assert.Nil(t, tl.DistanceMeters)
	}
}

func TestDiscoverTailors_FallbackAlsoFailing(t *testing.T) {
	t.Parallel()

	repo := &fakeTailorRepo{tailors: fixtureTailors(), failAll: true}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	_, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
	}, "")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeServiceUnavailable, appErr.Code)
	assert.Equal(t, 503, appErr.HTTPCode)
}

func TestDiscoverTailors_FiltersApplyOnSpatialPath(t *testing.T) {
	t.Parallel()

	tailors := fixtureTailors()
	repo := &fakeTailorRepo{tailors: tailors}
	svc := newDiscovery(repo, newFakeFavoriteRepo())

	resp, err := svc.DiscoverTailors(context.Background(), &dto.NearbyTailorsRequest{
		Latitude:  floatPtr(queryPoint.Latitude),
		Longitude: floatPtr(queryPoint.Longitude),
		MinRating: floatPtr(4.5),
	}, "")
	require.NoError(t, err)

	// gold-far (3.5) drops out; the rest keep their ranked order.
	var ids []string
	for _, tl := range resp.Tailors {
		ids = append(ids, tl.ID)
	}
	assert.Equal(t, []string{"silver-near", "basic-near", "no-plan"}, ids)
}
