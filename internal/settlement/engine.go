package settlement

import (
	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
)

// Messages returned on empty input instead of a computed settlement.
const (
	MsgNoParticipants = "No participants found"
	MsgNoExpenses     = "No expenses with split tracking found"
)

// Settle runs the full pipeline for one trip snapshot: balance aggregation,
// roll-up to settling entities, and min-cash-flow matching.
//
// The expense list must already be filtered to qualifying expenses (see
// Qualifying): payer set, non-empty split, not personal, positive amount.
// Given that precondition the computation cannot fail, so Settle returns no
// error; empty input produces an informational result with Message set.
func Settle(participants []*models.Participant, families []*models.Family, expenses []*models.Expense) *models.SettlementResult {
	if len(participants) == 0 {
		return emptyResult(MsgNoParticipants)
	}
	if len(expenses) == 0 {
		return emptyResult(MsgNoExpenses)
	}

	balances := aggregateBalances(participants, expenses)
	settling := resolveSettlingEntities(participants, families, balances)
	settlements := minCashFlow(settling)

	totalAmount := 0.0
	for _, e := range expenses {
		totalAmount += e.Amount
	}

	return &models.SettlementResult{
		IndividualBalances: balances,
		SettlingBalances:   settling,
		Settlements:        settlements,
		TotalExpenses:      len(expenses),
		TotalAmount:        totalAmount,
	}
}

// emptyResult keeps the balance keys present (as empty objects) so the
// response shape is the same whether or not anything was computed.
func emptyResult(message string) *models.SettlementResult {
	return &models.SettlementResult{
		IndividualBalances: map[string]*models.Balance{},
		SettlingBalances:   map[string]*models.SettlingBalance{},
		Settlements:        []models.SettlementTransaction{},
		Message:            message,
	}
}
