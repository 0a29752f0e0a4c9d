package search_restaurants

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/service/restaurants"
	"github.com/m04kA/SMC-RestaurantService/internal/service/restaurants/models"
	"github.com/m04kA/SMC-RestaurantService/pkg/ptr"
)

const msgInvalidFilter = "некорректные параметры фильтра"

type Handler struct {
	service RestaurantService
	logger  Logger
}

func NewHandler(service RestaurantService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants?city=&cuisine=&price=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.SearchRequest{}
	if city := query.Get("city"); city != "" {
		req.City = ptr.Ptr(city)
	}
	if cuisine := query.Get("cuisine"); cuisine != "" {
		req.Cuisine = ptr.Ptr(cuisine)
	}
	if price := query.Get("price"); price != "" {
		req.Price = ptr.Ptr(price)
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, restaurants.ErrInvalidInput):
			h.logger.Warn("GET /restaurants - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /restaurants - Failed to search restaurants: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants - Found %d restaurants", len(result.Restaurants))
	handlers.RespondJSON(w, http.StatusOK, result)
}
