package create_reservation

import (
	"context"

	createReservation "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

// Metrics счетчики бронирований; nil-реализация допустима
type Metrics interface {
	IncReservation(result string)
	ObserveTablesAllocated(n int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
