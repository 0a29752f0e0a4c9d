package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
)

// UseCase use case проверки доступности столов на точный момент времени
type UseCase struct {
	restaurantRepo RestaurantRepository
	bookingRepo    BookingRepository
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	restaurantRepo RestaurantRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		restaurantRepo: restaurantRepo,
		bookingRepo:    bookingRepo,
		logger:         logger,
	}
}

// Execute выполняет use case проверки доступности
// Read-only: никаких побочных эффектов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: slug=%s, day=%s, time=%s, partySize=%d",
		req.Slug, req.Day.Format(domain.DateFormat), req.Time, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресторан с часами и столами
	restaurant, err := uc.restaurantRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("GetAvailability: restaurant slug=%s not found", req.Slug)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("GetAvailability: failed to get restaurant slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// 3. Совмещаем дату и время в точный момент T
	at, err := req.Time.At(req.Day)
	if err != nil {
		uc.logger.Warn("GetAvailability: invalid time %q: %v", req.Time, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Проверка рабочих часов: границы открытия и закрытия строятся
	// на дате запроса, ровно на открытие/закрытие - принимается
	if err := validateHours(restaurant, at); err != nil {
		uc.logger.Warn("GetAvailability: slug=%s closed at %s (hours %s-%s)",
			req.Slug, at.Format("15:04"), restaurant.OpenTime, restaurant.CloseTime)
		return nil, err
	}

	// 5. Столы, уже занятые на момент T (строгое равенство времени)
	booked, err := uc.bookingRepo.GetBookedTableIDs(ctx, restaurant.ID, at)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get booked tables for slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get booked tables: %v", ErrInternal, err)
	}

	// 6. Свободные столы = все столы - занятые
	free := domain.GroupFreeTables(restaurant.Tables, booked)
	if free.Count() == 0 {
		uc.logger.Info("GetAvailability: slug=%s fully booked at %s", req.Slug, at.Format("15:04"))
		return nil, ErrNoAvailability
	}

	// 7. Прогон аллокатора без побочных эффектов: каким был бы выбор столов
	suggested, err := domain.Allocate(free, req.PartySize)
	if err != nil && !errors.Is(err, domain.ErrInsufficientCapacity) {
		uc.logger.Error("GetAvailability: allocation dry-run failed for slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: allocation dry-run failed: %v", ErrInternal, err)
	}

	resp := &Response{
		Slug:              req.Slug,
		At:                at,
		FreeTables:        toBuckets(free),
		CanSeatParty:      err == nil,
		SuggestedTableIDs: suggested,
	}

	uc.logger.Info("GetAvailability: slug=%s at %s: %d tables free, canSeat=%v",
		req.Slug, at.Format("15:04"), free.Count(), resp.CanSeatParty)

	return resp, nil
}

// toBuckets конвертирует FreeTables в упорядоченный по вместимости список
func toBuckets(free domain.FreeTables) []CapacityBucket {
	caps := free.Capacities()
	buckets := make([]CapacityBucket, 0, len(caps))
	for _, seats := range caps {
		buckets = append(buckets, CapacityBucket{
			Seats:    seats,
			TableIDs: free[seats],
		})
	}
	return buckets
}
