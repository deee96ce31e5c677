package models

// Balance is a participant's derived financial position. Recomputed fully
// on every settlement request, never persisted.
type Balance struct {
	// ID and Name identify the participant.
	ID   string `json:"id"`
	Name string `json:"name"`

	// TotalPaid is the sum of expense amounts this participant paid.
	TotalPaid float64 `json:"totalPaid"`

	// TotalOwed is the sum of this participant's shares across all splits.
	TotalOwed float64 `json:"totalOwed"`

	// NetBalance is TotalPaid - TotalOwed. Positive means others owe them.
	NetBalance float64 `json:"netBalance"`

	// IsHead and FamilyID are carried through for the settling roll-up.
	IsHead   bool   `json:"isHead"`
	FamilyID string `json:"familyId,omitempty"`
}

// MemberBalance records one participant's contribution to a settling
// entity's total, kept for diagnostics.
type MemberBalance struct {
	Name       string  `json:"name"`
	NetBalance float64 `json:"netBalance"`
}

// SettlingBalance is the aggregated position of a settling entity: a family
// head or an independent participant.
type SettlingBalance struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	NetBalance float64         `json:"netBalance"`
	Members    []MemberBalance `json:"members"`
}

// Party identifies one side of a settlement transaction.
type Party struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SettlementTransaction is a directed, positive-amount transfer that
// reduces one debtor's and one creditor's outstanding balance.
type SettlementTransaction struct {
	From   Party   `json:"from"`
	To     Party   `json:"to"`
	Amount float64 `json:"amount"`
}

// SettlementResult is the full output of a settlement computation.
type SettlementResult struct {
	IndividualBalances map[string]*Balance         `json:"individualBalances"`
	SettlingBalances   map[string]*SettlingBalance `json:"settlingBalances"`
	Settlements        []SettlementTransaction     `json:"settlements"`
	TotalExpenses      int                         `json:"totalExpenses"`
	TotalAmount        float64                     `json:"totalAmount"`

	// Message explains an empty result (no participants, or no expenses
	// with split tracking). Empty on a normal computation.
	Message string `json:"message,omitempty"`
}
