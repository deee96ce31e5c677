package settlement

import (
	"math"
	"sort"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
)

// epsilon is the two-decimal-currency tolerance: balances within epsilon of
// zero are considered settled, and no transaction smaller than epsilon is
// emitted.
const epsilon = 0.01

// party is a settling entity's mutable position during matching.
type party struct {
	id   string
	name string
	net  float64
}

// minCashFlow greedily matches the largest creditor against the largest
// debtor until one side runs out. Each step fully zeroes at least one
// entity, so the loop runs at most creditors+debtors-1 times. The result
// is deterministic (ties broken by entity ID) but not guaranteed to be the
// minimal transaction count.
func minCashFlow(settling map[string]*models.SettlingBalance) []models.SettlementTransaction {
	var creditors, debtors []party
	for _, e := range settling {
		switch {
		case e.NetBalance > epsilon:
			creditors = append(creditors, party{id: e.ID, name: e.Name, net: e.NetBalance})
		case e.NetBalance < -epsilon:
			debtors = append(debtors, party{id: e.ID, name: e.Name, net: e.NetBalance})
		}
	}

	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].net != creditors[j].net {
			return creditors[i].net > creditors[j].net
		}
		return creditors[i].id < creditors[j].id
	})
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].net != debtors[j].net {
			return debtors[i].net < debtors[j].net
		}
		return debtors[i].id < debtors[j].id
	})

	settlements := []models.SettlementTransaction{}

	// Two-pointer scan over the pre-sorted slices; an entity is passed over
	// once its remaining magnitude falls below epsilon.
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := math.Min(creditor.net, -debtor.net)

		if amount > epsilon {
			settlements = append(settlements, models.SettlementTransaction{
				From:   models.Party{ID: debtor.id, Name: debtor.name},
				To:     models.Party{ID: creditor.id, Name: creditor.name},
				Amount: round2(amount),
			})
		}

		creditor.net -= amount
		debtor.net += amount

		if math.Abs(creditor.net) < epsilon {
			i++
		}
		if math.Abs(debtor.net) < epsilon {
			j++
		}
	}

	return settlements
}

// round2 rounds to two decimals; applied only at transaction emission, not
// during aggregation.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
