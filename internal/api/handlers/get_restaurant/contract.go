package get_restaurant

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/service/restaurants/models"
)

type RestaurantService interface {
	GetBySlug(ctx context.Context, slug string) (*models.RestaurantResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
