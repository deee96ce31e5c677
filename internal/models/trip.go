package models

// Trip represents a trip that owns places, participants, families,
// expenses, and an itinerary.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string

	// Name is the display name of the trip.
	Name string

	// Destination is where the trip goes.
	Destination string

	// StartDate and EndDate are ISO dates (YYYY-MM-DD).
	StartDate string
	EndDate   string

	// Budget is the planned total spend for the trip.
	Budget float64

	// Currency is the trip's display currency (e.g. "INR", "USD").
	// Settlement ignores it; there is no conversion.
	Currency string

	// Status is one of "upcoming", "ongoing", "completed".
	Status string

	// AccessCodeHash is the bcrypt hash of the trip's access code.
	// The plaintext code is never stored.
	AccessCodeHash string

	// RecoveryQuestion and RecoveryAnswer allow regaining access to a trip
	// when the access code is lost. The answer is stored lowercased and
	// trimmed for case-insensitive matching.
	RecoveryQuestion string
	RecoveryAnswer   string

	// SecurityQuestion and SecurityAnswer are an optional extra check asked
	// when joining the trip. Stored like the recovery answer.
	SecurityQuestion string
	SecurityAnswer   string

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64
}

// Place represents a point of interest on a trip.
type Place struct {
	ID     string
	TripID string
	Name   string

	// Category loosely classifies the place (e.g. "historical", "food").
	Category string

	// EstimatedDuration is the expected visit length in minutes.
	EstimatedDuration int

	Address string
	Notes   string
}
