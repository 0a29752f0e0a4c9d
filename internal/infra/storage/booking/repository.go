package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

// Код PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с бронированиями и связями стол-бронирование
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBookedTableIDs получает ID столов ресторана, уже занятых
// на точный момент времени (строгое равенство booking_time, не окно)
//
// Внутри транзакции добавляет FOR UPDATE на строки связей, чтобы
// конкурирующий коммит на тот же момент времени сериализовался
func (r *Repository) GetBookedTableIDs(ctx context.Context, restaurantID int64, at time.Time) (map[int64]struct{}, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("bt.table_id").
		From("bookings_tables bt").
		Join("tables t ON t.id = bt.table_id").
		Where(squirrel.Eq{"t.restaurant_id": restaurantID}).
		Where(squirrel.Eq{"bt.booking_time": at})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF bt")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTableIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTableIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	booked := make(map[int64]struct{})
	for rows.Next() {
		var tableID int64
		if err := rows.Scan(&tableID); err != nil {
			return nil, fmt.Errorf("%w: GetBookedTableIDs - scan table_id: %v", ErrScanRow, err)
		}
		booked[tableID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedTableIDs - rows error: %v", ErrScanRow, err)
	}

	return booked, nil
}

// CreateWithTables создает бронирование и связи со столами единым блоком
//
// Должен вызываться внутри транзакции (через TxManager): либо все строки
// становятся видимыми, либо ни одной. Нарушение уникального индекса
// (table_id, booking_time) на вставке связей транслируется в
// ErrTableAlreadyBooked - это штатный исход проигравшего в гонке
func (r *Repository) CreateWithTables(ctx context.Context, booking *domain.Booking, tableIDs []int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"restaurant_id",
			"number_of_people",
			"booking_time",
			"booker_email",
			"booker_first_name",
			"booker_last_name",
			"booker_phone",
			"booker_occasion",
			"booker_request",
		).
		Values(
			booking.RestaurantID,
			booking.NumberOfPeople,
			booking.BookingTime,
			booking.BookerEmail,
			booking.BookerFirstName,
			booking.BookerLastName,
			booking.BookerPhone,
			booking.BookerOccasion,
			booking.BookerRequest,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithTables - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithTables - execute insert: %v", ErrExecQuery, err)
	}
	booking.CreatedAt = createdAt.Time

	linkBuilder := psqlbuilder.Insert("bookings_tables").
		Columns("booking_id", "table_id", "booking_time")
	for _, tableID := range tableIDs {
		linkBuilder = linkBuilder.Values(booking.ID, tableID, booking.BookingTime)
	}

	query, args, err = linkBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateWithTables - build links insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTableAlreadyBooked
		}
		return nil, fmt.Errorf("%w: CreateWithTables - execute links insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе со списком назначенных столов
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, []int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"restaurant_id",
		"number_of_people",
		"booking_time",
		"booker_email",
		"booker_first_name",
		"booker_last_name",
		"booker_phone",
		"booker_occasion",
		"booker_request",
		"created_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.RestaurantID,
		&booking.NumberOfPeople,
		&booking.BookingTime,
		&booking.BookerEmail,
		&booking.BookerFirstName,
		&booking.BookerLastName,
		&booking.BookerPhone,
		&booking.BookerOccasion,
		&booking.BookerRequest,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	booking.CreatedAt = createdAt.Time

	query, args, err = psqlbuilder.Select("table_id").
		From("bookings_tables").
		Where(squirrel.Eq{"booking_id": id}).
		OrderBy("table_id ASC").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetByID - build links query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: GetByID - execute links query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tableIDs := make([]int64, 0)
	for rows.Next() {
		var tableID int64
		if err := rows.Scan(&tableID); err != nil {
			return nil, nil, fmt.Errorf("%w: GetByID - scan table_id: %v", ErrScanRow, err)
		}
		tableIDs = append(tableIDs, tableID)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: GetByID - rows error: %v", ErrScanRow, err)
	}

	return &booking, tableIDs, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального
// ограничения PostgreSQL (код 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
