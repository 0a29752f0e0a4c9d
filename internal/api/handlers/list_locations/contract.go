package list_locations

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/restaurants/models"
)

type RestaurantService interface {
	Locations(ctx context.Context) (*models.LocationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
