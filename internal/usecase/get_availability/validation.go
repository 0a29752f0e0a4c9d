package get_availability

import (
	"fmt"
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
