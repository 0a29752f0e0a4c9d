package get_availability

import (
	"time"

	getAvailability "github.com/m04kA/SMC-RestaurantService/internal/usecase/get_availability"
)

// CapacityBucket свободные столы одной вместимости
type CapacityBucket struct {
	Seats    int     `json:"seats"`
	TableIDs []int64 `json:"tableIds"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Slug              string           `json:"slug"`
	At                string           `json:"at"` // ISO 8601
	FreeTables        []CapacityBucket `json:"freeTables"`
	CanSeatParty      bool             `json:"canSeatParty"`
	SuggestedTableIDs []int64          `json:"suggestedTableIds,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Slug:              resp.Slug,
		At:                resp.At.Format(time.RFC3339),
		FreeTables:        make([]CapacityBucket, 0, len(resp.FreeTables)),
		CanSeatParty:      resp.CanSeatParty,
		SuggestedTableIDs: resp.SuggestedTableIDs,
	}
	for _, b := range resp.FreeTables {
		out.FreeTables = append(out.FreeTables, CapacityBucket{Seats: b.Seats, TableIDs: b.TableIDs})
	}
	return out
}
