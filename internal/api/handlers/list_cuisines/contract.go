package list_cuisines

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/restaurants/models"
)

type RestaurantService interface {
	Cuisines(ctx context.Context) (*models.CuisineListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
