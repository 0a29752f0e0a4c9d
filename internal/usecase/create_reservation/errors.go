package create_reservation

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден по slug
	ErrRestaurantNotFound = errors.New("create_reservation: restaurant not found")

	// ErrOutsideOperatingHours возвращается, когда запрошенное время
	// вне рабочих часов ресторана
	ErrOutsideOperatingHours = errors.New("create_reservation: restaurant is not open at that time")

	// ErrNoAvailability возвращается, когда на запрошенный момент
	// нет ни одного свободного стола
	ErrNoAvailability = errors.New("create_reservation: no tables available at that time")

	// ErrInsufficientCapacity возвращается, когда свободные столы
	// не покрывают размер компании
	ErrInsufficientCapacity = errors.New("create_reservation: free tables cannot seat the party")

	// ErrTableNoLongerAvailable возвращается, когда между чтением
	// доступности и коммитом стол забрал конкурирующий запрос
	// Вызывающая сторона может повторить всю последовательность целиком
	ErrTableNoLongerAvailable = errors.New("create_reservation: table is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
