package get_availability

import (
	"time"

	"github.com/m04kA/SMC-RestaurantService/pkg/types"
)

// Request модель запроса доступности
type Request struct {
	Slug      string           // Slug ресторана
	Day       time.Time        // Календарная дата (без времени)
	Time      types.TimeString // Время слота (например, "19:00")
	PartySize int              // Размер компании
}

// Response модель ответа с доступностью на запрошенный момент
type Response struct {
	Slug string    // Slug ресторана
	At   time.Time // Точный момент, на который проверялась доступность

	// FreeTables свободные столы, сгруппированные по вместимости
	// (очереди упорядочены по возрастанию ID)
	FreeTables []CapacityBucket

	// CanSeatParty достаточно ли свободных столов под размер компании
	CanSeatParty bool

	// SuggestedTableIDs набор столов, который выбрал бы аллокатор
	// (пуст, если CanSeatParty == false)
	SuggestedTableIDs []int64
}

// CapacityBucket очередь свободных столов одной вместимости
type CapacityBucket struct {
	Seats    int
	TableIDs []int64
}
