package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	getAvailability "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

const (
	msgInvalidDay         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidPartySize   = "некорректный размер компании"
	msgRestaurantNotFound = "ресторан не найден"
	msgOutsideHours       = "ресторан закрыт в выбранное время"
	msgNoAvailability     = "на выбранное время нет свободных столов"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restaurants/{slug}/availability?day=YYYY-MM-DD&time=HH:MM&partySize=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	query := r.URL.Query()

	day, err := time.Parse(domain.DateFormat, query.Get("day"))
	if err != nil {
		h.logger.Warn("GET /restaurants/{slug}/availability - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	slot, err := types.NewTimeStringFromString(query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /restaurants/{slug}/availability - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	partySize, err := strconv.Atoi(query.Get("partySize"))
	if err != nil {
		h.logger.Warn("GET /restaurants/{slug}/availability - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		Slug:      slug,
		Day:       day,
		Time:      slot,
		PartySize: partySize,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrRestaurantNotFound):
			h.logger.Warn("GET /restaurants/{slug}/availability - Restaurant not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, getAvailability.ErrOutsideOperatingHours):
			h.logger.Warn("GET /restaurants/{slug}/availability - Outside operating hours: slug=%s, time=%s", slug, slot)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, getAvailability.ErrNoAvailability):
			h.logger.Warn("GET /restaurants/{slug}/availability - No availability: slug=%s, time=%s", slug, slot)
			handlers.RespondConflict(w, msgNoAvailability)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /restaurants/{slug}/availability - Invalid input: slug=%s, error=%v", slug, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /restaurants/{slug}/availability - Failed to get availability: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /restaurants/{slug}/availability - Availability resolved: slug=%s, canSeat=%t",
		slug, result.CanSeatParty)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
