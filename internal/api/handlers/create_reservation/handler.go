package create_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	createReservation "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RestaurantService/pkg/metrics"
	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDay         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidPartySize   = "некорректный размер компании"
	msgRestaurantNotFound = "ресторан не найден"
	msgOutsideHours       = "ресторан закрыт в выбранное время"
	msgNoAvailability     = "на выбранное время нет свободных столов"
	msgNoCapacity         = "свободные столы не вмещают компанию такого размера"
	msgTableTaken         = "столы только что заняли, попробуйте другое время"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, m Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: m,
		logger:  logger,
	}
}

// Handle POST /api/v1/restaurants/{slug}/reserve?day=YYYY-MM-DD&time=HH:MM&partySize=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	query := r.URL.Query()

	day, err := time.Parse(domain.DateFormat, query.Get("day"))
	if err != nil {
		h.logger.Warn("POST /restaurants/{slug}/reserve - Invalid day: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDay)
		return
	}

	slot, err := types.NewTimeStringFromString(query.Get("time"))
	if err != nil {
		h.logger.Warn("POST /restaurants/{slug}/reserve - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	partySize, err := strconv.Atoi(query.Get("partySize"))
	if err != nil {
		h.logger.Warn("POST /restaurants/{slug}/reserve - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPartySize)
		return
	}

	var booker BookerRequest
	if err := handlers.DecodeJSON(r, &booker); err != nil {
		h.logger.Warn("POST /restaurants/{slug}/reserve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := &createReservation.Request{
		Slug:            slug,
		Day:             day,
		Time:            slot,
		PartySize:       partySize,
		BookerEmail:     booker.Email,
		BookerFirstName: booker.FirstName,
		BookerLastName:  booker.LastName,
		BookerPhone:     booker.Phone,
		BookerOccasion:  booker.Occasion,
		BookerRequest:   booker.Request,
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)

	// Проигравший гонку запрос повторяет всю последовательность
	// resolve -> allocate -> commit один раз: аллокатор мог переложить
	// компанию на другие столы
	if errors.Is(err, createReservation.ErrTableNoLongerAvailable) {
		h.logger.Info("POST /restaurants/{slug}/reserve - Retrying after lost race: slug=%s", slug)
		result, err = h.useCase.Execute(r.Context(), useCaseReq)
	}

	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrRestaurantNotFound):
			h.logger.Warn("POST /restaurants/{slug}/reserve - Restaurant not found: slug=%s", slug)
			h.incReservation(metrics.ResultError)
			handlers.RespondNotFound(w, msgRestaurantNotFound)

		case errors.Is(err, createReservation.ErrOutsideOperatingHours):
			h.logger.Warn("POST /restaurants/{slug}/reserve - Outside operating hours: slug=%s, time=%s", slug, slot)
			h.incReservation(metrics.ResultOutsideHours)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createReservation.ErrNoAvailability):
			h.logger.Warn("POST /restaurants/{slug}/reserve - No availability: slug=%s, time=%s", slug, slot)
			h.incReservation(metrics.ResultNoCapacity)
			handlers.RespondConflict(w, msgNoAvailability)

		case errors.Is(err, createReservation.ErrInsufficientCapacity):
			h.logger.Warn("POST /restaurants/{slug}/reserve - Insufficient capacity: slug=%s, partySize=%d", slug, partySize)
			h.incReservation(metrics.ResultNoCapacity)
			handlers.RespondConflict(w, msgNoCapacity)

		case errors.Is(err, createReservation.ErrTableNoLongerAvailable):
			h.logger.Warn("POST /restaurants/{slug}/reserve - Lost race twice: slug=%s, time=%s", slug, slot)
			h.incReservation(metrics.ResultConflict)
			handlers.RespondConflict(w, msgTableTaken)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /restaurants/{slug}/reserve - Invalid input: slug=%s, error=%v", slug, err)
			h.incReservation(metrics.ResultError)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /restaurants/{slug}/reserve - Failed to create reservation: slug=%s, error=%v", slug, err)
			h.incReservation(metrics.ResultError)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.incReservation(metrics.ResultSuccess)
	if h.metrics != nil {
		h.metrics.ObserveTablesAllocated(len(result.TableIDs))
	}

	h.logger.Info("POST /restaurants/{slug}/reserve - Reservation created: booking_id=%d, slug=%s, tables=%v",
		result.BookingID, slug, result.TableIDs)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) incReservation(result string) {
	if h.metrics != nil {
		h.metrics.IncReservation(result)
	}
}
