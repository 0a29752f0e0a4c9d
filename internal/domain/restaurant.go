package domain

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Price ценовая категория ресторана
type Price string

const (
	PriceCheap     Price = "CHEAP"
	PriceRegular   Price = "REGULAR"
	PriceExpensive Price = "EXPENSIVE"
)

// IsValid проверяет, что ценовая категория допустима
func (p Price) IsValid() bool {
	return p == PriceCheap || p == PriceRegular || p == PriceExpensive
}

// Location город, в котором находится ресторан
type Location struct {
	ID   int64
	Name string
}

// Cuisine кухня ресторана
type Cuisine struct {
	ID   int64
	Name string
}

// Table физический стол ресторана - единица аллокации при бронировании
// Каждый стол принадлежит ровно одному ресторану
type Table struct {
	ID           int64
	RestaurantID int64
	Seats        int
}

// Restaurant ресторан с рабочими часами и набором столов
// Инвариант: OpenTime < CloseTime (часы в рамках одного дня,
// работа через полночь не поддерживается)
type Restaurant struct {
	ID        int64
	Name      string
	Slug      string
	MainImage string
	Price     Price
	OpenTime  types.TimeString
	CloseTime types.TimeString

	LocationID int64
	CuisineID  int64

	// Заполняются при выборке с JOIN
	Location *Location
	Cuisine  *Cuisine

	// Полный список столов ресторана, упорядочен по ID
	Tables []Table
}

// RestaurantFilter фильтр поиска ресторанов
// Все поля опциональны и комбинируются через AND
type RestaurantFilter struct {
	City    *string // Название города (регистронезависимо)
	Cuisine *string // Название кухни (регистронезависимо)
	Price   *Price  // Ценовая категория
}

// OpensAt возвращает момент открытия ресторана в указанный день
func (r *Restaurant) OpensAt(day time.Time) (time.Time, error) {
	return r.OpenTime.At(day)
}

// ClosesAt возвращает момент закрытия ресторана в указанный день
func (r *Restaurant) ClosesAt(day time.Time) (time.Time, error) {
	return r.CloseTime.At(day)
}

// IsOpenAt проверяет, что момент времени попадает в рабочие часы
// Границы включительно: запрос ровно на открытие или закрытие принимается
// Открытие и закрытие строятся на дате самого запроса
func (r *Restaurant) IsOpenAt(at time.Time) (bool, error) {
	open, err := r.OpensAt(at)
	if err != nil {
		return false, err
	}
	close, err := r.ClosesAt(at)
	if err != nil {
		return false, err
	}
	return !at.Before(open) && !at.After(close), nil
}

// TotalSeats возвращает суммарную вместимость всех столов ресторана
func (r *Restaurant) TotalSeats() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Seats
	}
	return total
}
