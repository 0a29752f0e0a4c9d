package domain

import "time"

// Booking подтвержденное бронирование на конкретный момент времени
// Создается один раз при успешном бронировании и после этого не изменяется
// (отмена и редактирование вне скоупа сервиса)
type Booking struct {
	ID             int64
	RestaurantID   int64
	NumberOfPeople int
	// BookingTime точный момент бронирования (дата + время слота)
	BookingTime time.Time

	BookerEmail     string
	BookerFirstName string
	BookerLastName  string
	BookerPhone     string
	BookerOccasion  *string
	BookerRequest   *string

	CreatedAt time.Time
}

// BookingTableLink связь бронирования с конкретным столом
// BookingTime денормализован из Booking: на нем держится
// уникальный индекс (table_id, booking_time), закрывающий двойное
// бронирование стола на один и тот же момент времени
type BookingTableLink struct {
	BookingID   int64
	TableID     int64
	BookingTime time.Time
}
