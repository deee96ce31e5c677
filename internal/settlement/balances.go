// Package settlement computes trip settlements: per-participant balances,
// family roll-up to settling entities, and a greedy minimum-cash-flow set
// of transfers. The whole pipeline is pure and recomputes from scratch on
// every call.
package settlement

import (
	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
)

// Qualifying filters expenses down to the ones that take part in
// settlement: a payer is set, the split set is non-empty, the expense is
// not personal, and the amount is positive.
func Qualifying(expenses []*models.Expense) []*models.Expense {
	var out []*models.Expense
	for _, e := range expenses {
		if e.IsPersonal || e.PaidByParticipant == "" || len(e.SplitAmong) == 0 || e.Amount <= 0 {
			continue
		}
		out = append(out, e)
	}
	return out
}

// aggregateBalances computes each participant's paid/owed/net position.
//
// Algorithm:
//   - The payer is credited the full expense amount.
//   - Every member of the split set is debited amount/len(split), the payer
//     included if they are in their own split. Paid and owed are tracked
//     independently, so the net balance self-corrects.
//   - No rounding happens here; amounts stay full precision.
//
// Expense references to unknown participants are dropped: the paid or owed
// share simply does not land anywhere.
func aggregateBalances(participants []*models.Participant, expenses []*models.Expense) map[string]*models.Balance {
	balances := make(map[string]*models.Balance, len(participants))
	for _, p := range participants {
		balances[p.ID] = &models.Balance{
			ID:       p.ID,
			Name:     p.Name,
			IsHead:   p.IsHead,
			FamilyID: p.FamilyID,
		}
	}

	for _, e := range expenses {
		if payer, ok := balances[e.PaidByParticipant]; ok {
			payer.TotalPaid += e.Amount
		}

		share := e.Amount / float64(len(e.SplitAmong))
		for _, id := range e.SplitAmong {
			if b, ok := balances[id]; ok {
				b.TotalOwed += share
			}
		}
	}

	for _, b := range balances {
		b.NetBalance = b.TotalPaid - b.TotalOwed
	}

	return balances
}
