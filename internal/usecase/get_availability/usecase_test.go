package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeRestaurantRepo struct {
	restaurant *domain.Restaurant
}

func (f *fakeRestaurantRepo) GetBySlug(_ context.Context, slug string) (*domain.Restaurant, error) {
	if f.restaurant == nil || f.restaurant.Slug != slug {
		return nil, restaurantRepo.ErrRestaurantNotFound
	}
	return f.restaurant, nil
}

type fakeBookingRepo struct {
	booked map[int64]struct{}
}

func (f *fakeBookingRepo) GetBookedTableIDs(_ context.Context, _ int64, _ time.Time) (map[int64]struct{}, error) {
	return f.booked, nil
}

// vivaan: открыт 09:00-22:00, два стола на 2 места (ID 1, 2)
// и один на 4 места (ID 3)
func vivaan() *domain.Restaurant {
	return &domain.Restaurant{
		ID:        10,
		Slug:      "vivaan-fine-indian",
		OpenTime:  "09:00",
		CloseTime: "22:00",
		Tables: []domain.Table{
			{ID: 1, RestaurantID: 10, Seats: 2},
			{ID: 2, RestaurantID: 10, Seats: 2},
			{ID: 3, RestaurantID: 10, Seats: 4},
		},
	}
}

func newUseCase(rest *domain.Restaurant, booked map[int64]struct{}) *UseCase {
	return NewUseCase(
		&fakeRestaurantRepo{restaurant: rest},
		&fakeBookingRepo{booked: booked},
		nopLogger{},
	)
}

func request(timeStr string, partySize int) *Request {
	return &Request{
		Slug:      "vivaan-fine-indian",
		Day:       time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
		Time:      types.TimeString(timeStr),
		PartySize: partySize,
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("AllTablesFree", func(t *testing.T) {
		uc := newUseCase(vivaan(), nil)

		resp, err := uc.Execute(ctx, request("19:00", 5))
		require.NoError(t, err)

		require.Len(t, resp.FreeTables, 2)
		assert.Equal(t, CapacityBucket{Seats: 2, TableIDs: []int64{1, 2}}, resp.FreeTables[0])
		assert.Equal(t, CapacityBucket{Seats: 4, TableIDs: []int64{3}}, resp.FreeTables[1])
		assert.True(t, resp.CanSeatParty)
		// Большой стол, затем малый с наименьшим ID
		assert.Equal(t, []int64{3, 1}, resp.SuggestedTableIDs)
		assert.Equal(t, time.Date(2025, 11, 4, 19, 0, 0, 0, time.UTC), resp.At)
	})

	t.Run("BookedTablesExcluded", func(t *testing.T) {
		uc := newUseCase(vivaan(), map[int64]struct{}{1: {}, 3: {}})

		resp, err := uc.Execute(ctx, request("19:00", 2))
		require.NoError(t, err)

		require.Len(t, resp.FreeTables, 1)
		assert.Equal(t, CapacityBucket{Seats: 2, TableIDs: []int64{2}}, resp.FreeTables[0])
		assert.Equal(t, []int64{2}, resp.SuggestedTableIDs)
	})

	t.Run("FullyBooked", func(t *testing.T) {
		uc := newUseCase(vivaan(), map[int64]struct{}{1: {}, 2: {}, 3: {}})

		_, err := uc.Execute(ctx, request("19:00", 2))
		assert.ErrorIs(t, err, ErrNoAvailability)
	})

	t.Run("InsufficientCapacityIsNotAnError", func(t *testing.T) {
		// Свободен один малый стол, компания из 6: ответ с CanSeatParty=false
		uc := newUseCase(vivaan(), map[int64]struct{}{2: {}, 3: {}})

		resp, err := uc.Execute(ctx, request("19:00", 6))
		require.NoError(t, err)
		assert.False(t, resp.CanSeatParty)
		assert.Empty(t, resp.SuggestedTableIDs)
	})

	t.Run("RestaurantNotFound", func(t *testing.T) {
		uc := newUseCase(vivaan(), nil)

		req := request("19:00", 2)
		req.Slug = "unknown"
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})

	t.Run("InvalidPartySize", func(t *testing.T) {
		uc := newUseCase(vivaan(), nil)

		_, err := uc.Execute(ctx, request("19:00", 0))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_OperatingHours(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		time    string
		wantErr bool
	}{
		{"BeforeOpen", "08:00", true},
		{"MinuteBeforeOpen", "08:59", true},
		{"ExactlyAtOpen", "09:00", false},
		{"MidDay", "19:00", false},
		{"ExactlyAtClose", "22:00", false},
		{"MinuteAfterClose", "22:01", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newUseCase(vivaan(), nil)

			_, err := uc.Execute(ctx, request(tc.time, 2))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrOutsideOperatingHours)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
