package models

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	PartySize    int       `json:"partySize"`
	BookingTime  time.Time `json:"bookingTime"`
	TableIDs     []int64   `json:"tableIds"`

	BookerEmail     string  `json:"bookerEmail"`
	BookerFirstName string  `json:"bookerFirstName"`
	BookerLastName  string  `json:"bookerLastName"`
	BookerPhone     string  `json:"bookerPhone"`
	BookerOccasion  *string `json:"bookerOccasion,omitempty"`
	BookerRequest   *string `json:"bookerRequest,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, tableIDs []int64) *ReservationResponse {
	if b == nil {
		return nil
	}

	return &ReservationResponse{
		ID:              b.ID,
		RestaurantID:    b.RestaurantID,
		PartySize:       b.NumberOfPeople,
		BookingTime:     b.BookingTime,
		TableIDs:        tableIDs,
		BookerEmail:     b.BookerEmail,
		BookerFirstName: b.BookerFirstName,
		BookerLastName:  b.BookerLastName,
		BookerPhone:     b.BookerPhone,
		BookerOccasion:  b.BookerOccasion,
		BookerRequest:   b.BookerRequest,
		CreatedAt:       b.CreatedAt,
	}
}
