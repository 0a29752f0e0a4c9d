package domain

// Business validation constants
const (
	MinPartySize = 1
	MaxPartySize = 20

	MaxBookerNameLength    = 100
	MaxBookerEmailLength   = 254
	MaxBookerPhoneLength   = 32
	MaxBookerRequestLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
