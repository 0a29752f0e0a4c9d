package restaurants

import (
	"context"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// RestaurantRepository интерфейс репозитория ресторанов
type RestaurantRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	Search(ctx context.Context, filter domain.RestaurantFilter) ([]*domain.Restaurant, error)
	ListLocations(ctx context.Context) ([]*domain.Location, error)
	ListCuisines(ctx context.Context) ([]*domain.Cuisine, error)
}

// Cache интерфейс read-through кеша выдачи
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
