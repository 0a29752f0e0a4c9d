package list_cuisines

import (
	"net/http"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
)

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

// Handle GET /api/v1/cuisines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Cuisines(r.Context())
	if err != nil {
		h.logger.Error("GET /cuisines - Failed to list cuisines: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
