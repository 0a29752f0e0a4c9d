package models

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

var (
	// ErrInvalidPrice возвращается при некорректной ценовой категории
	ErrInvalidPrice = errors.New("invalid price category")
)

// Request модели

// SearchRequest запрос на поиск ресторанов
// Все фильтры опциональны и комбинируются через AND
type SearchRequest struct {
	City    *string `json:"city,omitempty"`
	Cuisine *string `json:"cuisine,omitempty"`
	Price   *string `json:"price,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *SearchRequest) ToDomainFilter() (domain.RestaurantFilter, error) {
	filter := domain.RestaurantFilter{
		City:    r.City,
		Cuisine: r.Cuisine,
	}

	if r.Price != nil {
		price := domain.Price(strings.ToUpper(*r.Price))
		if !price.IsValid() {
			return filter, ErrInvalidPrice
		}
		filter.Price = &price
	}

	return filter, nil
}

// Response модели

// TableResponse стол ресторана
type TableResponse struct {
	ID    int64 `json:"id"`
	Seats int   `json:"seats"`
}

// RestaurantResponse ответ с данными ресторана
type RestaurantResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	MainImage string `json:"mainImage"`
	Price     string `json:"price"`
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "22:00"
	Location  string `json:"location"`
	Cuisine   string `json:"cuisine"`

	// Заполняется только в карточке ресторана (GetBySlug)
	Tables []TableResponse `json:"tables,omitempty"`
}

// RestaurantListResponse ответ со списком ресторанов
type RestaurantListResponse struct {
	Restaurants []RestaurantResponse `json:"restaurants"`
}

// LocationListResponse ответ со списком городов
type LocationListResponse struct {
	Locations []string `json:"locations"`
}

// CuisineListResponse ответ со списком кухонь
type CuisineListResponse struct {
	Cuisines []string `json:"cuisines"`
}

// Методы конвертации

// FromDomainRestaurant конвертирует domain модель в DTO
func FromDomainRestaurant(r *domain.Restaurant) *RestaurantResponse {
	if r == nil {
		return nil
	}

	resp := &RestaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		MainImage: r.MainImage,
		Price:     string(r.Price),
		OpenTime:  r.OpenTime.String(),
		CloseTime: r.CloseTime.String(),
	}

	if r.Location != nil {
		resp.Location = r.Location.Name
	}
	if r.Cuisine != nil {
		resp.Cuisine = r.Cuisine.Name
	}

	for _, t := range r.Tables {
		resp.Tables = append(resp.Tables, TableResponse{ID: t.ID, Seats: t.Seats})
	}

	return resp
}

// FromDomainRestaurantList конвертирует список domain моделей в DTO
func FromDomainRestaurantList(restaurants []*domain.Restaurant) *RestaurantListResponse {
	resp := &RestaurantListResponse{Restaurants: make([]RestaurantResponse, 0, len(restaurants))}
	for _, r := range restaurants {
		resp.Restaurants = append(resp.Restaurants, *FromDomainRestaurant(r))
	}
	return resp
}

// FromDomainLocations конвертирует список городов в DTO
func FromDomainLocations(locations []*domain.Location) *LocationListResponse {
	resp := &LocationListResponse{Locations: make([]string, 0, len(locations))}
	for _, l := range locations {
		resp.Locations = append(resp.Locations, l.Name)
	}
	return resp
}

// FromDomainCuisines конвертирует список кухонь в DTO
func FromDomainCuisines(cuisines []*domain.Cuisine) *CuisineListResponse {
	resp := &CuisineListResponse{Cuisines: make([]string, 0, len(cuisines))}
	for _, c := range cuisines {
		resp.Cuisines = append(resp.Cuisines, c.Name)
	}
	return resp
}
