package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// RestaurantRepository интерфейс репозитория ресторанов
type RestaurantRepository interface {
	// GetBySlug получает ресторан с рабочими часами и полным списком столов
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBookedTableIDs получает ID столов, занятых на точный момент времени
	GetBookedTableIDs(ctx context.Context, restaurantID int64, at time.Time) (map[int64]struct{}, error)

	// CreateWithTables создает бронирование и связи со столами единым блоком
	CreateWithTables(ctx context.Context, booking *domain.Booking, tableIDs []int64) (*domain.Booking, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
