package models

// Expense represents an amount paid by one participant, optionally split
// among a set of participants. Expenses are immutable: they are created and
// deleted, never edited.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// Description says what the money was spent on.
	Description string

	// Amount is the full expense amount, positive.
	Amount float64

	// Currency is the expense currency. Informational only; settlement
	// does not convert.
	Currency string

	// PaymentTime is the Unix timestamp of the payment.
	PaymentTime int64

	// PaidByParticipant references the participant who paid, or is empty.
	// Expenses without a payer are excluded from settlement.
	PaidByParticipant string

	// PlaceID optionally links the expense to a place on the trip.
	PlaceID string

	// ModeOfPayment records how the expense was paid (e.g. "UPI", "cash").
	ModeOfPayment string

	// IsPersonal marks an expense that is not shared; personal expenses
	// are excluded from settlement entirely.
	IsPersonal bool

	// SplitAmong lists the participant IDs the expense is divided evenly
	// across. Empty for personal expenses.
	SplitAmong []string
}
