package restaurants

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-RestaurantService/internal/infra/cache"
	restaurantRepo "github.com/m04kA/SMC-RestaurantService/internal/infra/storage/restaurant"
	"github.com/m04kA/SMC-RestaurantService/internal/service/restaurants/models"
)

// Service сервис каталога ресторанов: поиск, карточка, справочники
// Выдача поиска и справочники кешируются read-through: промах или
// недоступность кеша приводят к походу в БД, ошибки кеша не фатальны
type Service struct {
	restaurantRepo RestaurantRepository
	cache          Cache
	logger         Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(restaurantRepo RestaurantRepository, c Cache, logger Logger) *Service {
	return &Service{
		restaurantRepo: restaurantRepo,
		cache:          c,
		logger:         logger,
	}
}

// Search ищет рестораны по фильтру город/кухня/ценовая категория
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.RestaurantListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("Search: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	key := cache.SearchKey(normalize(req.City), normalize(req.Cuisine), normalize(req.Price))

	var cached models.RestaurantListResponse
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.logger.Info("Search: cache hit for key=%s", key)
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Search: cache read failed for key=%s: %v", key, err)
	}

	restaurants, err := s.restaurantRepo.Search(ctx, filter)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainRestaurantList(restaurants)

	if err := s.cache.Set(ctx, key, resp); err != nil {
		s.logger.Warn("Search: cache write failed for key=%s: %v", key, err)
	}

	s.logger.Info("Search: found %d restaurants for key=%s", len(resp.Restaurants), key)
	return resp, nil
}

// GetBySlug получает карточку ресторана со столами
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.RestaurantResponse, error) {
	s.logger.Info("GetBySlug: fetching restaurant slug=%s", slug)

	restaurant, err := s.restaurantRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, restaurantRepo.ErrRestaurantNotFound) {
			s.logger.Warn("GetBySlug: restaurant slug=%s not found", slug)
			return nil, ErrRestaurantNotFound
		}
		s.logger.Error("GetBySlug: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRestaurant(restaurant), nil
}

// Locations получает список городов для фильтра поиска
func (s *Service) Locations(ctx context.Context) (*models.LocationListResponse, error) {
	var cached models.LocationListResponse
	if err := s.cache.Get(ctx, cache.KeyLocations, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Locations: cache read failed: %v", err)
	}

	locations, err := s.restaurantRepo.ListLocations(ctx)
	if err != nil {
		s.logger.Error("Locations: repository error: %v", err)
		return nil, fmt.Errorf("%w: Locations - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainLocations(locations)

	if err := s.cache.Set(ctx, cache.KeyLocations, resp); err != nil {
		s.logger.Warn("Locations: cache write failed: %v", err)
	}

	return resp, nil
}

// Cuisines получает список кухонь для фильтра поиска
func (s *Service) Cuisines(ctx context.Context) (*models.CuisineListResponse, error) {
	var cached models.CuisineListResponse
	if err := s.cache.Get(ctx, cache.KeyCuisines, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Cuisines: cache read failed: %v", err)
	}

	cuisines, err := s.restaurantRepo.ListCuisines(ctx)
	if err != nil {
		s.logger.Error("Cuisines: repository error: %v", err)
		return nil, fmt.Errorf("%w: Cuisines - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainCuisines(cuisines)

	if err := s.cache.Set(ctx, cache.KeyCuisines, resp); err != nil {
		s.logger.Warn("Cuisines: cache write failed: %v", err)
	}

	return resp, nil
}

// normalize приводит опциональное значение фильтра к ключевому виду
func normalize(v *string) string {
	if v == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*v))
}
