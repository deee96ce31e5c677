package settlement

import (
	"math"
	"testing"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
)

func p(id, name, familyID string, isHead bool) *models.Participant {
	return &models.Participant{ID: id, TripID: "trip-1", Name: name, FamilyID: familyID, IsHead: isHead}
}

func e(id string, amount float64, payer string, split ...string) *models.Expense {
	return &models.Expense{
		ID:                id,
		TripID:            "trip-1",
		Amount:            amount,
		PaidByParticipant: payer,
		SplitAmong:        split,
	}
}

func TestQualifying(t *testing.T) {
	expenses := []*models.Expense{
		e("ok", 90, "alice", "alice", "bob"),
		e("no-payer", 50, "", "alice", "bob"),
		e("no-split", 50, "alice"),
		e("zero-amount", 0, "alice", "alice"),
		{ID: "personal", Amount: 20, PaidByParticipant: "alice", SplitAmong: []string{"alice"}, IsPersonal: true},
	}

	got := Qualifying(expenses)
	if len(got) != 1 {
		t.Fatalf("expected 1 qualifying expense, got %d", len(got))
	}
	if got[0].ID != "ok" {
		t.Errorf("expected expense 'ok', got %q", got[0].ID)
	}
}

func TestAggregateBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []*models.Participant
		expenses     []*models.Expense
		validate     func(t *testing.T, balances map[string]*models.Balance)
	}{
		{
			name: "payer debited for own share",
			participants: []*models.Participant{
				p("alice", "Alice", "", true),
				p("bob", "Bob", "", true),
			},
			expenses: []*models.Expense{
				e("x1", 100, "alice", "alice", "bob"),
			},
			validate: func(t *testing.T, balances map[string]*models.Balance) {
				alice := balances["alice"]
				if math.Abs(alice.TotalPaid-100) > 1e-9 {
					t.Errorf("Alice paid = %v, want 100", alice.TotalPaid)
				}
				if math.Abs(alice.TotalOwed-50) > 1e-9 {
					t.Errorf("Alice owed = %v, want 50", alice.TotalOwed)
				}
				if math.Abs(alice.NetBalance-50) > 1e-9 {
					t.Errorf("Alice net = %v, want 50", alice.NetBalance)
				}
				if math.Abs(balances["bob"].NetBalance+50) > 1e-9 {
					t.Errorf("Bob net = %v, want -50", balances["bob"].NetBalance)
				}
			},
		},
		{
			name: "shares stay full precision",
			participants: []*models.Participant{
				p("alice", "Alice", "", true),
				p("bob", "Bob", "", true),
				p("carol", "Carol", "", true),
			},
			expenses: []*models.Expense{
				e("x1", 100, "alice", "alice", "bob", "carol"),
			},
			validate: func(t *testing.T, balances map[string]*models.Balance) {
				want := 100.0 / 3.0
				for _, id := range []string{"alice", "bob", "carol"} {
					if math.Abs(balances[id].TotalOwed-want) > 1e-9 {
						t.Errorf("%s owed = %v, want %v (unrounded)", id, balances[id].TotalOwed, want)
					}
				}
			},
		},
		{
			name: "participant absent from expenses keeps zero balances",
			participants: []*models.Participant{
				p("alice", "Alice", "", true),
				p("dave", "Dave", "", true),
			},
			expenses: []*models.Expense{
				e("x1", 40, "alice", "alice"),
			},
			validate: func(t *testing.T, balances map[string]*models.Balance) {
				dave := balances["dave"]
				if dave.TotalPaid != 0 || dave.TotalOwed != 0 || dave.NetBalance != 0 {
					t.Errorf("Dave balances = %+v, want all zero", dave)
				}
			},
		},
		{
			name: "unknown participant references are dropped",
			participants: []*models.Participant{
				p("alice", "Alice", "", true),
				p("bob", "Bob", "", true),
			},
			expenses: []*models.Expense{
				e("x1", 90, "alice", "alice", "bob", "ghost"),
			},
			validate: func(t *testing.T, balances map[string]*models.Balance) {
				if _, ok := balances["ghost"]; ok {
					t.Error("unknown participant should not appear in balance map")
				}
				// Ghost's 30 share is lost; Alice and Bob owe 30 each.
				if math.Abs(balances["alice"].TotalOwed-30) > 1e-9 {
					t.Errorf("Alice owed = %v, want 30", balances["alice"].TotalOwed)
				}
				if math.Abs(balances["bob"].TotalOwed-30) > 1e-9 {
					t.Errorf("Bob owed = %v, want 30", balances["bob"].TotalOwed)
				}
			},
		},
		{
			name: "multiple expenses accumulate",
			participants: []*models.Participant{
				p("alice", "Alice", "", true),
				p("bob", "Bob", "", true),
			},
			expenses: []*models.Expense{
				e("x1", 60, "alice", "alice", "bob"),
				e("x2", 40, "bob", "alice", "bob"),
			},
			validate: func(t *testing.T, balances map[string]*models.Balance) {
				if math.Abs(balances["alice"].NetBalance-10) > 1e-9 {
					t.Errorf("Alice net = %v, want 10", balances["alice"].NetBalance)
				}
				if math.Abs(balances["bob"].NetBalance+10) > 1e-9 {
					t.Errorf("Bob net = %v, want -10", balances["bob"].NetBalance)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := aggregateBalances(tt.participants, tt.expenses)
			tt.validate(t, balances)
		})
	}
}

// Every amount paid is owed by someone, so net balances sum to zero as long
// as all split references resolve.
func TestAggregateBalances_NetSumsToZero(t *testing.T) {
	participants := []*models.Participant{
		p("alice", "Alice", "", true),
		p("bob", "Bob", "", true),
		p("carol", "Carol", "", true),
		p("dave", "Dave", "", true),
	}
	expenses := []*models.Expense{
		e("x1", 123.45, "alice", "alice", "bob", "carol"),
		e("x2", 67.89, "bob", "bob", "dave"),
		e("x3", 300, "carol", "alice", "bob", "carol", "dave"),
		e("x4", 19.99, "dave", "alice"),
	}

	balances := aggregateBalances(participants, expenses)

	sum := 0.0
	for _, b := range balances {
		sum += b.NetBalance
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("net balances sum to %v, want ~0", sum)
	}
}
