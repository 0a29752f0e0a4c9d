package create_reservation

import (
	"time"

	createReservation "github.com/m04kA/SMC-RestaurantService/internal/usecase/create_reservation"
)

// BookerRequest HTTP request model: контактные данные гостя
type BookerRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Occasion  *string `json:"occasion,omitempty"`
	Request   *string `json:"request,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	BookingID   int64   `json:"bookingId"`
	BookingTime string  `json:"bookingTime"` // ISO 8601
	PartySize   int     `json:"partySize"`
	TableIDs    []int64 `json:"tableIds"`
	TotalSeats  int     `json:"totalSeats"`
	CreatedAt   string  `json:"createdAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		BookingID:   resp.BookingID,
		BookingTime: resp.At.Format(time.RFC3339),
		PartySize:   resp.PartySize,
		TableIDs:    resp.TableIDs,
		TotalSeats:  resp.TotalSeats,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
