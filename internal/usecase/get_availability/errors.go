package get_availability

import "errors"

var (
	// ErrRestaurantNotFound возвращается, когда ресторан не найден по slug
	ErrRestaurantNotFound = errors.New("get_availability: restaurant not found")

	// ErrOutsideOperatingHours возвращается, когда запрошенное время
	// вне рабочих часов ресторана
	ErrOutsideOperatingHours = errors.New("get_availability: restaurant is not open at that time")

	// ErrNoAvailability возвращается, когда на запрошенный момент
	// нет ни одного свободного стола
	ErrNoAvailability = errors.New("get_availability: no tables available at that time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
