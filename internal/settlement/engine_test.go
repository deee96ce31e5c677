package settlement

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
)

// One family (Alice head, Carol dependent), Bob independent. Alice fronts
// 300 split three ways: Alice +200, Bob -100, Carol -100 individually;
// Alice's family settles at +100 against Bob's -100.
func TestSettle_FamilyRollUp(t *testing.T) {
	participants := []*models.Participant{
		p("alice", "Alice", "fam-1", true),
		p("bob", "Bob", "", true),
		p("carol", "Carol", "fam-1", false),
	}
	families := []*models.Family{
		{ID: "fam-1", TripID: "trip-1", Name: "Alice's Family", HeadID: "alice"},
	}
	expenses := []*models.Expense{
		e("x1", 300, "alice", "alice", "bob", "carol"),
	}

	result := Settle(participants, families, expenses)

	if result.Message != "" {
		t.Fatalf("unexpected message: %q", result.Message)
	}

	wantNet := map[string]float64{"alice": 200, "bob": -100, "carol": -100}
	for id, want := range wantNet {
		got := result.IndividualBalances[id].NetBalance
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("%s net = %v, want %v", id, got, want)
		}
	}

	if len(result.SettlingBalances) != 2 {
		t.Fatalf("expected 2 settling entities, got %d", len(result.SettlingBalances))
	}
	if got := result.SettlingBalances["alice"].NetBalance; math.Abs(got-100) > 1e-9 {
		t.Errorf("Alice settling net = %v, want 100", got)
	}
	if got := result.SettlingBalances["bob"].NetBalance; math.Abs(got+100) > 1e-9 {
		t.Errorf("Bob settling net = %v, want -100", got)
	}
	if members := result.SettlingBalances["alice"].Members; len(members) != 2 {
		t.Errorf("Alice settling members = %d, want 2 (Alice and Carol)", len(members))
	}

	if len(result.Settlements) != 1 {
		t.Fatalf("expected 1 settlement, got %d", len(result.Settlements))
	}
	tx := result.Settlements[0]
	if tx.From.ID != "bob" || tx.To.ID != "alice" {
		t.Errorf("settlement = %s -> %s, want bob -> alice", tx.From.ID, tx.To.ID)
	}
	if math.Abs(tx.Amount-100) > 1e-9 {
		t.Errorf("settlement amount = %v, want 100", tx.Amount)
	}

	if result.TotalExpenses != 1 {
		t.Errorf("totalExpenses = %d, want 1", result.TotalExpenses)
	}
	if math.Abs(result.TotalAmount-300) > 1e-9 {
		t.Errorf("totalAmount = %v, want 300", result.TotalAmount)
	}
}

// 100 split three ways: shares are 33.333... during aggregation and 33.33
// only in the emitted transactions.
func TestSettle_RoundsOnlyAtEmission(t *testing.T) {
	participants := []*models.Participant{
		p("alice", "Alice", "", true),
		p("bob", "Bob", "", true),
		p("carol", "Carol", "", true),
	}
	expenses := []*models.Expense{
		e("x1", 100, "alice", "alice", "bob", "carol"),
	}

	result := Settle(participants, nil, expenses)

	if got := result.IndividualBalances["bob"].TotalOwed; math.Abs(got-100.0/3.0) > 1e-9 {
		t.Errorf("Bob owed = %v, want unrounded 100/3", got)
	}
	if len(result.Settlements) != 2 {
		t.Fatalf("expected 2 settlements, got %d", len(result.Settlements))
	}
	for _, tx := range result.Settlements {
		if tx.Amount != 33.33 {
			t.Errorf("settlement amount = %v, want 33.33", tx.Amount)
		}
	}
}

func TestSettle_EmptyInput(t *testing.T) {
	t.Run("no participants", func(t *testing.T) {
		result := Settle(nil, nil, nil)
		if result.Message != MsgNoParticipants {
			t.Errorf("message = %q, want %q", result.Message, MsgNoParticipants)
		}
		if len(result.Settlements) != 0 {
			t.Errorf("expected no settlements, got %d", len(result.Settlements))
		}
	})

	t.Run("no qualifying expenses", func(t *testing.T) {
		participants := []*models.Participant{p("alice", "Alice", "", true)}
		unqualified := Qualifying([]*models.Expense{
			e("x1", 50, "", "alice"), // payer never set
		})

		result := Settle(participants, nil, unqualified)
		if result.Message != MsgNoExpenses {
			t.Errorf("message = %q, want %q", result.Message, MsgNoExpenses)
		}
		if len(result.Settlements) != 0 {
			t.Errorf("expected no settlements, got %d", len(result.Settlements))
		}
	})

	// Empty results keep the same shape as computed ones: the balance maps
	// are present and empty rather than null or missing.
	t.Run("stable JSON shape", func(t *testing.T) {
		for _, result := range []*models.SettlementResult{
			Settle(nil, nil, nil),
			Settle([]*models.Participant{p("alice", "Alice", "", true)}, nil, nil),
		} {
			if result.IndividualBalances == nil || result.SettlingBalances == nil {
				t.Fatal("expected non-nil balance maps on empty result")
			}

			raw, err := json.Marshal(result)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			for _, want := range []string{`"individualBalances":{}`, `"settlingBalances":{}`, `"settlements":[]`} {
				if !strings.Contains(string(raw), want) {
					t.Errorf("response %s missing %s", raw, want)
				}
			}
		}
	})
}

func TestSettle_AllBalancedWithinTolerance(t *testing.T) {
	participants := []*models.Participant{
		p("alice", "Alice", "", true),
		p("bob", "Bob", "", true),
	}
	expenses := []*models.Expense{
		e("x1", 50, "alice", "alice", "bob"),
		e("x2", 50, "bob", "alice", "bob"),
	}

	result := Settle(participants, nil, expenses)

	if result.Message != "" {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if len(result.Settlements) != 0 {
		t.Errorf("expected no settlements, got %+v", result.Settlements)
	}
	if len(result.IndividualBalances) != 2 || len(result.SettlingBalances) != 2 {
		t.Error("balance maps should still be populated when nothing is owed")
	}
}

// A dependent whose family no longer exists is excluded from settling
// aggregation rather than treated as independent.
func TestSettle_OrphanedDependentExcluded(t *testing.T) {
	participants := []*models.Participant{
		p("alice", "Alice", "", true),
		p("bob", "Bob", "fam-gone", false),
	}
	expenses := []*models.Expense{
		e("x1", 100, "alice", "alice", "bob"),
	}

	result := Settle(participants, nil, expenses)

	// Bob's individual balance is still computed.
	if math.Abs(result.IndividualBalances["bob"].NetBalance+50) > 1e-9 {
		t.Errorf("Bob net = %v, want -50", result.IndividualBalances["bob"].NetBalance)
	}

	// But no settling entity carries it, so Alice's +50 has no counterparty.
	if len(result.SettlingBalances) != 1 {
		t.Fatalf("expected 1 settling entity, got %d", len(result.SettlingBalances))
	}
	if math.Abs(result.SettlingBalances["alice"].NetBalance-50) > 1e-9 {
		t.Errorf("Alice settling net = %v, want 50", result.SettlingBalances["alice"].NetBalance)
	}
	if len(result.Settlements) != 0 {
		t.Errorf("expected no settlements without a debtor, got %+v", result.Settlements)
	}
}

func TestSettle_Deterministic(t *testing.T) {
	participants := []*models.Participant{
		p("alice", "Alice", "fam-1", true),
		p("bob", "Bob", "fam-1", false),
		p("carol", "Carol", "", true),
		p("dave", "Dave", "", true),
		p("erin", "Erin", "", true),
	}
	families := []*models.Family{
		{ID: "fam-1", TripID: "trip-1", Name: "Family One", HeadID: "alice"},
	}
	expenses := []*models.Expense{
		e("x1", 212.5, "alice", "alice", "bob", "carol", "dave"),
		e("x2", 97.2, "carol", "carol", "erin"),
		e("x3", 45, "dave", "alice", "dave", "erin"),
	}

	first := Settle(participants, families, expenses)
	for i := 0; i < 10; i++ {
		again := Settle(participants, families, expenses)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed from first run:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestSettle_SettlementsCoverPositiveBalances(t *testing.T) {
	participants := []*models.Participant{
		p("alice", "Alice", "", true),
		p("bob", "Bob", "", true),
		p("carol", "Carol", "", true),
		p("dave", "Dave", "", true),
	}
	expenses := []*models.Expense{
		e("x1", 151.37, "alice", "alice", "bob", "carol"),
		e("x2", 89.99, "bob", "bob", "carol", "dave"),
		e("x3", 42.01, "carol", "alice", "dave"),
	}

	result := Settle(participants, nil, expenses)

	positive := 0.0
	for _, s := range result.SettlingBalances {
		if s.NetBalance > 0 {
			positive += s.NetBalance
		}
	}

	emitted := 0.0
	for _, tx := range result.Settlements {
		emitted += tx.Amount
	}

	tolerance := 2 * epsilon * float64(len(result.Settlements))
	if tolerance < epsilon {
		tolerance = epsilon
	}
	if math.Abs(emitted-positive) > tolerance {
		t.Errorf("settlements total %v, positive balances total %v (tolerance %v)", emitted, positive, tolerance)
	}
}
