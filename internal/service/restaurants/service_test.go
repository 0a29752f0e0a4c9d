package restaurants

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/internal/infra/cache"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantService/internal/service/restaurants/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakeRepo считает обращения, чтобы проверять попадания в кеш
type fakeRepo struct {
	restaurants []*domain.Restaurant
	searchCalls int
}

func (f *fakeRepo) GetBySlug(_ context.Context, slug string) (*domain.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, restaurantRepo.ErrRestaurantNotFound
}

func (f *fakeRepo) Search(_ context.Context, _ domain.RestaurantFilter) ([]*domain.Restaurant, error) {
	f.searchCalls++
	return f.restaurants, nil
}

func (f *fakeRepo) ListLocations(_ context.Context) ([]*domain.Location, error) {
	return []*domain.Location{{ID: 1, Name: "ottawa"}, {ID: 2, Name: "toronto"}}, nil
}

func (f *fakeRepo) ListCuisines(_ context.Context) ([]*domain.Cuisine, error) {
	return []*domain.Cuisine{{ID: 1, Name: "indian"}}, nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()

	s := miniredis.RunT(t)
	client := cache.NewClient(s.Addr(), 0)
	t.Cleanup(func() { client.Close() })

	repo := &fakeRepo{
		restaurants: []*domain.Restaurant{
			{
				ID:        10,
				Name:      "Vivaan",
				Slug:      "vivaan-fine-indian",
				Price:     domain.PriceRegular,
				OpenTime:  "09:00",
				CloseTime: "22:00",
				Location:  &domain.Location{ID: 1, Name: "ottawa"},
				Cuisine:   &domain.Cuisine{ID: 1, Name: "indian"},
			},
		},
	}

	return NewService(repo, cache.New(client, time.Minute), nopLogger{}), repo
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("SecondCallServedFromCache", func(t *testing.T) {
		svc, repo := newTestService(t)
		req := &models.SearchRequest{City: ptr.Ptr("Ottawa")}

		first, err := svc.Search(ctx, req)
		require.NoError(t, err)
		require.Len(t, first.Restaurants, 1)
		assert.Equal(t, "vivaan-fine-indian", first.Restaurants[0].Slug)

		second, err := svc.Search(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, repo.searchCalls)
	})

	t.Run("DifferentFiltersUseDifferentKeys", func(t *testing.T) {
		svc, repo := newTestService(t)

		_, err := svc.Search(ctx, &models.SearchRequest{City: ptr.Ptr("ottawa")})
		require.NoError(t, err)
		_, err = svc.Search(ctx, &models.SearchRequest{Cuisine: ptr.Ptr("indian")})
		require.NoError(t, err)

		assert.Equal(t, 2, repo.searchCalls)
	})

	t.Run("InvalidPriceRejected", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Search(ctx, &models.SearchRequest{Price: ptr.Ptr("LUXURY")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("PriceIsCaseInsensitive", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.Search(ctx, &models.SearchRequest{Price: ptr.Ptr("regular")})
		require.NoError(t, err)
		assert.Len(t, resp.Restaurants, 1)
	})
}

func TestGetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsRestaurantWithHours", func(t *testing.T) {
		svc, _ := newTestService(t)

		resp, err := svc.GetBySlug(ctx, "vivaan-fine-indian")
		require.NoError(t, err)
		assert.Equal(t, "09:00", resp.OpenTime)
		assert.Equal(t, "22:00", resp.CloseTime)
		assert.Equal(t, "ottawa", resp.Location)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.GetBySlug(ctx, "unknown")
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})
}

func TestDirectories(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	locations, err := svc.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ottawa", "toronto"}, locations.Locations)

	cuisines, err := svc.Cuisines(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"indian"}, cuisines.Cuisines)
}
