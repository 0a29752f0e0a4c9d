package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/booking"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
)

// Код PostgreSQL: конфликт сериализации конкурирующих транзакций
const pgSerializationFailure = "40001"

// UseCase use case создания бронирования: resolve -> allocate -> commit
type UseCase struct {
	restaurantRepo RestaurantRepository
	bookingRepo    BookingRepository
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	restaurantRepo RestaurantRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		restaurantRepo: restaurantRepo,
		bookingRepo:    bookingRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет полную последовательность бронирования
//
// Чтение занятых столов, аллокация и запись выполняются в одной
// сериализуемой транзакции, поэтому повторная проверка доступности
// на момент коммита получается сама собой: аллокатор работает только
// со свежим (и заблокированным FOR UPDATE) набором занятых столов.
// Вторая линия защиты - уникальный индекс (table_id, booking_time):
// проигравший в гонке получает ErrTableNoLongerAvailable и может
// повторить всю последовательность
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: slug=%s, day=%s, time=%s, partySize=%d",
		req.Slug, req.Day.Format(domain.DateFormat), req.Time, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем ресторан (read-only, вне транзакции)
	restaurant, err := uc.restaurantRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			uc.logger.Warn("CreateReservation: restaurant slug=%s not found", req.Slug)
			return nil, ErrRestaurantNotFound
		}
		uc.logger.Error("CreateReservation: failed to get restaurant slug=%s: %v", req.Slug, err)
		return nil, fmt.Errorf("%w: failed to get restaurant: %v", ErrInternal, err)
	}

	// 3. Совмещаем дату и время в точный момент T
	at, err := req.Time.At(req.Day)
	if err != nil {
		uc.logger.Warn("CreateReservation: invalid time %q: %v", req.Time, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Проверка рабочих часов (границы включительно, в рамках одного дня)
	if err := validateHours(restaurant, at); err != nil {
		uc.logger.Warn("CreateReservation: slug=%s closed at %s (hours %s-%s)",
			req.Slug, at.Format("15:04"), restaurant.OpenTime, restaurant.CloseTime)
		return nil, err
	}

	var result *domain.Booking
	var tableIDs []int64

	// 5. resolve -> allocate -> commit в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Занятые столы на момент T, с блокировкой строк
		booked, err := uc.bookingRepo.GetBookedTableIDs(txCtx, restaurant.ID, at)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get booked tables: %v", err)
			return fmt.Errorf("%w: failed to get booked tables: %v", ErrInternal, err)
		}

		// 5.2. Свободные столы, разложенные по очередям вместимости
		free := domain.GroupFreeTables(restaurant.Tables, booked)
		if free.Count() == 0 {
			uc.logger.Info("CreateReservation: slug=%s fully booked at %s", req.Slug, at.Format("15:04"))
			return ErrNoAvailability
		}

		// 5.3. Жадная аллокация столов под размер компании
		tableIDs, err = domain.Allocate(free, req.PartySize)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientCapacity) {
				uc.logger.Info("CreateReservation: slug=%s cannot seat party of %d at %s (%d seats free)",
					req.Slug, req.PartySize, at.Format("15:04"), free.TotalSeats())
				return fmt.Errorf("%w: %v", ErrInsufficientCapacity, err)
			}
			uc.logger.Error("CreateReservation: allocation failed: %v", err)
			return fmt.Errorf("%w: allocation failed: %v", ErrInternal, err)
		}

		// 5.4. Пишем бронирование и связи атомарно
		booking := &domain.Booking{
			RestaurantID:    restaurant.ID,
			NumberOfPeople:  req.PartySize,
			BookingTime:     at,
			BookerEmail:     req.BookerEmail,
			BookerFirstName: req.BookerFirstName,
			BookerLastName:  req.BookerLastName,
			BookerPhone:     req.BookerPhone,
			BookerOccasion:  req.BookerOccasion,
			BookerRequest:   req.BookerRequest,
		}

		created, err := uc.bookingRepo.CreateWithTables(txCtx, booking, tableIDs)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrTableAlreadyBooked) {
				uc.logger.Warn("CreateReservation: lost race for tables %v at %s", tableIDs, at.Format("15:04"))
				return ErrTableNoLongerAvailable
			}
			uc.logger.Error("CreateReservation: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Конфликт сериализации - тот же исход гонки, что и нарушение
		// уникального индекса: вызывающая сторона может повторить
		if isSerializationFailure(err) {
			uc.logger.Warn("CreateReservation: serialization conflict for slug=%s at %s", req.Slug, at.Format("15:04"))
			return nil, ErrTableNoLongerAvailable
		}
		return nil, err
	}

	totalSeats := 0
	seatsByID := make(map[int64]int, len(restaurant.Tables))
	for _, t := range restaurant.Tables {
		seatsByID[t.ID] = t.Seats
	}
	for _, id := range tableIDs {
		totalSeats += seatsByID[id]
	}

	uc.logger.Info("CreateReservation: created booking id=%d, tables=%v, seats=%d for party of %d",
		result.ID, tableIDs, totalSeats, req.PartySize)

	return &Response{
		BookingID:    result.ID,
		RestaurantID: restaurant.ID,
		At:           at,
		PartySize:    req.PartySize,
		TableIDs:     tableIDs,
		TotalSeats:   totalSeats,
		CreatedAt:    result.CreatedAt,
	}, nil
}

// isSerializationFailure проверяет, что ошибка - конфликт сериализации
// PostgreSQL (код 40001), обычно всплывающий на коммите
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgSerializationFailure
	}
	return false
}
