package create_reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Slug == "" {
		return fmt.Errorf("%w: slug is required", ErrInvalidInput)
	}

	if req.Day.IsZero() {
		return fmt.Errorf("%w: day is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: party size must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	if err := validateBooker(req); err != nil {
		return err
	}

	return nil
}

// validateBooker валидирует контактные данные гостя
// Поля прозрачны для ядра, проверяются только заполненность и длины
func validateBooker(req *Request) error {
	if strings.TrimSpace(req.BookerEmail) == "" || !strings.Contains(req.BookerEmail, "@") {
		return fmt.Errorf("%w: booker email is required", ErrInvalidInput)
	}
	if len(req.BookerEmail) > domain.MaxBookerEmailLength {
		return fmt.Errorf("%w: booker email is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.BookerFirstName) == "" {
		return fmt.Errorf("%w: booker first name is required", ErrInvalidInput)
	}
	if len(req.BookerFirstName) > domain.MaxBookerNameLength {
		return fmt.Errorf("%w: booker first name is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.BookerLastName) == "" {
		return fmt.Errorf("%w: booker last name is required", ErrInvalidInput)
	}
	if len(req.BookerLastName) > domain.MaxBookerNameLength {
		return fmt.Errorf("%w: booker last name is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.BookerPhone) == "" {
		return fmt.Errorf("%w: booker phone is required", ErrInvalidInput)
	}
	if len(req.BookerPhone) > domain.MaxBookerPhoneLength {
		return fmt.Errorf("%w: booker phone is too long", ErrInvalidInput)
	}

	if req.BookerRequest != nil && len(*req.BookerRequest) > domain.MaxBookerRequestLength {
		return fmt.Errorf("%w: booker request is too long", ErrInvalidInput)
	}

	return nil
}

// validateHours проверяет, что момент попадает в рабочие часы ресторана
// Часы в рамках одного дня: работа через полночь не поддерживается
func validateHours(restaurant *domain.Restaurant, at time.Time) error {
	open, err := restaurant.IsOpenAt(at)
	if err != nil {
		return fmt.Errorf("%w: invalid restaurant hours: %v", ErrInternal, err)
	}
	if !open {
		return fmt.Errorf("%w: open %s - %s", ErrOutsideOperatingHours,
			restaurant.OpenTime, restaurant.CloseTime)
	}
	return nil
}
