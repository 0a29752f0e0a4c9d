package create_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/booking"
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

// fakeBookingStore in-memory хранилище бронирований, воспроизводящее
// уникальное ограничение (table_id, booking_time): вставка конфликтующей
// связи атомарно падает с ErrTableAlreadyBooked, как в PostgreSQL.
// При freezeReads чтение занятых столов возвращает пустой снимок:
// так конкурирующие запросы видят одно и то же состояние до гонки
// и сталкиваются уже на вставке
type fakeBookingStore struct {
	mu          sync.Mutex
	nextID      int64
	freezeReads bool
	links       map[time.Time]map[int64]int64 // booking_time -> table_id -> booking_id
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{links: make(map[time.Time]map[int64]int64)}
}

func (f *fakeBookingStore) GetBookedTableIDs(_ context.Context, _ int64, at time.Time) (map[int64]struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	booked := make(map[int64]struct{})
	if f.freezeReads {
		return booked, nil
	}
	for tableID := range f.links[at] {
		booked[tableID] = struct{}{}
	}
	return booked, nil
}

func (f *fakeBookingStore) CreateWithTables(_ context.Context, booking *domain.Booking, tableIDs []int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Сначала проверяем все связи, потом вставляем: все или ничего
	at := booking.BookingTime
	for _, tableID := range tableIDs {
		if _, taken := f.links[at][tableID]; taken {
			return nil, bookingRepo.ErrTableAlreadyBooked
		}
	}

	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	if f.links[at] == nil {
		f.links[at] = make(map[int64]int64)
	}
	for _, tableID := range tableIDs {
		f.links[at][tableID] = booking.ID
	}

	return booking, nil
}

// fakeTxManager прозрачный менеджер: атомарность обеспечивает mutex хранилища
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

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

func newTestUseCase(rest *domain.Restaurant) (*UseCase, *fakeBookingStore) {
	store := newFakeBookingStore()
	uc := NewUseCase(&fakeRestaurantRepo{restaurant: rest}, store, fakeTxManager{}, nopLogger{})
	return uc, store
}

func request(timeStr string, partySize int) *Request {
	return &Request{
		Slug:            "vivaan-fine-indian",
		Day:             time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC),
		Time:            types.TimeString(timeStr),
		PartySize:       partySize,
		BookerEmail:     "guest@example.com",
		BookerFirstName: "Anna",
		BookerLastName:  "Petrova",
		BookerPhone:     "+1-613-555-0101",
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("PartyOfFiveGetsLargeAndSmallTable", func(t *testing.T) {
		uc, store := newTestUseCase(vivaan())

		resp, err := uc.Execute(ctx, request("19:00", 5))
		require.NoError(t, err)

		assert.Equal(t, []int64{3, 1}, resp.TableIDs)
		assert.Equal(t, 6, resp.TotalSeats)
		assert.Equal(t, 5, resp.PartySize)
		assert.NotZero(t, resp.BookingID)

		// Связи видны последующим чтениям доступности
		booked, err := store.GetBookedTableIDs(ctx, 10, resp.At)
		require.NoError(t, err)
		assert.Equal(t, map[int64]struct{}{1: {}, 3: {}}, booked)
	})

	t.Run("OutsideOperatingHours", func(t *testing.T) {
		uc, _ := newTestUseCase(vivaan())

		_, err := uc.Execute(ctx, request("08:00", 2))
		assert.ErrorIs(t, err, ErrOutsideOperatingHours)
	})

	t.Run("BoundaryTimesAccepted", func(t *testing.T) {
		uc, _ := newTestUseCase(vivaan())

		_, err := uc.Execute(ctx, request("09:00", 2))
		assert.NoError(t, err)

		_, err = uc.Execute(ctx, request("22:00", 2))
		assert.NoError(t, err)
	})

	t.Run("FullyBookedSlot", func(t *testing.T) {
		uc, _ := newTestUseCase(vivaan())

		// Занимаем все столы двумя бронированиями
		_, err := uc.Execute(ctx, request("19:00", 8))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, request("19:00", 2))
		assert.ErrorIs(t, err, ErrNoAvailability)
	})

	t.Run("SameTablesFreeAtDifferentTime", func(t *testing.T) {
		uc, _ := newTestUseCase(vivaan())

		_, err := uc.Execute(ctx, request("19:00", 8))
		require.NoError(t, err)

		// На другой момент времени те же столы свободны
		resp, err := uc.Execute(ctx, request("21:00", 4))
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, resp.TableIDs)
	})

	t.Run("FallbackToTwoSmallTables", func(t *testing.T) {
		uc, _ := newTestUseCase(vivaan())

		// Большой стол занят, компания из 4 получает два малых
		_, err := uc.Execute(ctx, request("19:00", 4))
		require.NoError(t, err)

		resp, err := uc.Execute(ctx, request("19:00", 4))
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, resp.TableIDs)
		assert.Equal(t, 4, resp.TotalSeats)
	})

	t.Run("InsufficientCapacity", func(t *testing.T) {
		uc, _ := newTestUseCase(vivaan())

		_, err := uc.Execute(ctx, request("19:00", 6))
		require.NoError(t, err)

		// Остался один малый стол - компания из 4 не помещается
		_, err = uc.Execute(ctx, request("19:00", 4))
		assert.ErrorIs(t, err, ErrInsufficientCapacity)
	})

	t.Run("RestaurantNotFound", func(t *testing.T) {
		uc, _ := newTestUseCase(vivaan())

		req := request("19:00", 2)
		req.Slug = "unknown"
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrRestaurantNotFound)
	})

	t.Run("InvalidBookerRejected", func(t *testing.T) {
		uc, _ := newTestUseCase(vivaan())

		req := request("19:00", 2)
		req.BookerEmail = "not-an-email"
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req = request("19:00", 2)
		req.BookerFirstName = "  "
		_, err = uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

// TestExecute_ConcurrentRequests гонка за последний свободный стол:
// ровно один из конкурирующих запросов коммитится, остальные получают
// ErrTableNoLongerAvailable и могут повторить последовательность
func TestExecute_ConcurrentRequests(t *testing.T) {
	rest := &domain.Restaurant{
		ID:        10,
		Slug:      "vivaan-fine-indian",
		OpenTime:  "09:00",
		CloseTime: "22:00",
		Tables: []domain.Table{
			{ID: 1, RestaurantID: 10, Seats: 2},
		},
	}
	uc, store := newTestUseCase(rest)
	store.freezeReads = true
	ctx := context.Background()

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, request("19:00", 2))
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for err := range results {
		switch {
		case err == nil:
			successCount++
		default:
			assert.ErrorIs(t, err, ErrTableNoLongerAvailable)
			conflictCount++
		}
	}

	assert.Equal(t, 1, successCount, "exactly one request must win the table")
	assert.Equal(t, numGoroutines-1, conflictCount)

	// В хранилище ровно одна связь на стол и момент времени
	store.freezeReads = false
	at := time.Date(2025, 11, 4, 19, 0, 0, 0, time.UTC)
	booked, err := store.GetBookedTableIDs(ctx, 10, at)
	require.NoError(t, err)
	assert.Equal(t, map[int64]struct{}{1: {}}, booked)
}
