package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Slug      string           // Slug ресторана
	Day       time.Time        // Календарная дата (без времени)
	Time      types.TimeString // Время слота (например, "19:00")
	PartySize int              // Размер компании

	// Контактные данные гостя (прозрачно передаются в хранилище)
	BookerEmail     string
	BookerFirstName string
	BookerLastName  string
	BookerPhone     string
	BookerOccasion  *string
	BookerRequest   *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID    int64     // ID созданного бронирования
	RestaurantID int64     // ID ресторана
	At           time.Time // Точный момент бронирования
	PartySize    int       // Размер компании
	TableIDs     []int64   // Назначенные столы (в порядке аллокации)
	TotalSeats   int       // Суммарная вместимость назначенных столов
	CreatedAt    time.Time // Время создания записи
}
