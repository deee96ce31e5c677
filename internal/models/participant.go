package models

// Participant represents a person on a trip.
//
// A participant with no family is independent and settles for themselves
// (IsHead=true). A participant that belongs to a family is either the
// family's head (IsHead=true) or a dependent (IsHead=false) whose balance
// is absorbed by the head at settlement time.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string

	// TripID is the trip this participant belongs to.
	TripID string

	// Name is the participant's display name.
	Name string

	// FamilyID references the owning family, or is empty for independent
	// participants.
	FamilyID string

	// IsHead marks the participant as a settling entity: a family head or
	// an independent participant.
	IsHead bool
}

// Family represents a named group of participants with exactly one head.
//
// Deleting a family detaches all its members: their FamilyID is cleared and
// IsHead set true, making them independent.
type Family struct {
	// ID is the unique identifier for the family (UUID format).
	ID string

	// TripID is the trip this family belongs to.
	TripID string

	// Name is the display name (e.g. "Sharma Family").
	Name string

	// HeadID references the participant who settles on behalf of the
	// family. The head always exists and has IsHead=true.
	HeadID string
}
