package service

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/settlement"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func createTrip(t *testing.T, store *sqlite.SQLiteStore) *models.Trip {
	t.Helper()

	trip := &models.Trip{
		Name:           "Test Trip",
		Destination:    "Manali",
		StartDate:      "2026-05-01",
		EndDate:        "2026-05-07",
		AccessCodeHash: "$2a$10$x",
	}
	require.NoError(t, store.CreateTrip(context.Background(), trip))

	return trip
}

// Full stack run of the head/dependent roll-up: Alice heads a family with
// dependent Carol, Bob is independent. Alice fronts 300 split three ways,
// so Bob owes Alice's family 100.
func TestSettleTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store)

	family := &models.Family{TripID: trip.ID, Name: "Alice's Family"}
	alice := &models.Participant{Name: "Alice"}
	require.NoError(t, store.CreateFamily(ctx, family, alice))

	carol := &models.Participant{TripID: trip.ID, Name: "Carol", FamilyID: family.ID, IsHead: false}
	bob := &models.Participant{TripID: trip.ID, Name: "Bob", IsHead: true}
	require.NoError(t, store.CreateParticipant(ctx, carol))
	require.NoError(t, store.CreateParticipant(ctx, bob))

	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		TripID:            trip.ID,
		Description:       "Hotel",
		Amount:            300,
		PaidByParticipant: alice.ID,
		SplitAmong:        []string{alice.ID, bob.ID, carol.ID},
	}))

	svc := NewSettlementService(store)
	result, err := svc.SettleTrip(ctx, trip.ID)
	require.NoError(t, err)

	assert.Empty(t, result.Message)
	assert.Equal(t, 1, result.TotalExpenses)
	assert.InDelta(t, 300, result.TotalAmount, 1e-9)

	require.Len(t, result.Settlements, 1)
	tx := result.Settlements[0]
	assert.Equal(t, bob.ID, tx.From.ID)
	assert.Equal(t, alice.ID, tx.To.ID)
	assert.InDelta(t, 100, tx.Amount, 0.005)

	assert.InDelta(t, 100, result.SettlingBalances[alice.ID].NetBalance, 1e-9)
	assert.InDelta(t, -100, result.SettlingBalances[bob.ID].NetBalance, 1e-9)
}

func TestSettleTrip_PersonalAndUntrackedExpensesIgnored(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store)

	alice := &models.Participant{TripID: trip.ID, Name: "Alice", IsHead: true}
	bob := &models.Participant{TripID: trip.ID, Name: "Bob", IsHead: true}
	require.NoError(t, store.CreateParticipant(ctx, alice))
	require.NoError(t, store.CreateParticipant(ctx, bob))

	// Shared, qualifies.
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		TripID: trip.ID, Description: "Lunch", Amount: 80,
		PaidByParticipant: alice.ID, SplitAmong: []string{alice.ID, bob.ID},
	}))
	// Personal, excluded.
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		TripID: trip.ID, Description: "Souvenir", Amount: 500,
		PaidByParticipant: alice.ID, SplitAmong: []string{alice.ID}, IsPersonal: true,
	}))
	// No payer, excluded.
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		TripID: trip.ID, Description: "Cash tip", Amount: 50,
	}))

	svc := NewSettlementService(store)
	result, err := svc.SettleTrip(ctx, trip.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalExpenses)
	assert.InDelta(t, 80, result.TotalAmount, 1e-9)
	require.Len(t, result.Settlements, 1)
	assert.InDelta(t, 40, result.Settlements[0].Amount, 0.005)
}

func TestSettleTrip_EmptyTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store)

	svc := NewSettlementService(store)

	t.Run("no participants", func(t *testing.T) {
		result, err := svc.SettleTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, settlement.MsgNoParticipants, result.Message)
		assert.Empty(t, result.Settlements)
	})

	t.Run("participants but no tracked expenses", func(t *testing.T) {
		p := &models.Participant{TripID: trip.ID, Name: "Solo", IsHead: true}
		require.NoError(t, store.CreateParticipant(ctx, p))

		result, err := svc.SettleTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, settlement.MsgNoExpenses, result.Message)
		assert.Empty(t, result.Settlements)
	})
}

// Deleting a family makes its members independent, and the next settlement
// reflects that: everyone settles for themselves.
func TestSettleTrip_AfterFamilyDeletion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store)

	family := &models.Family{TripID: trip.ID, Name: "Family"}
	head := &models.Participant{Name: "Head"}
	require.NoError(t, store.CreateFamily(ctx, family, head))

	dependent := &models.Participant{TripID: trip.ID, Name: "Dependent", FamilyID: family.ID, IsHead: false}
	require.NoError(t, store.CreateParticipant(ctx, dependent))

	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		TripID: trip.ID, Description: "Dinner", Amount: 100,
		PaidByParticipant: head.ID, SplitAmong: []string{head.ID, dependent.ID},
	}))

	svc := NewSettlementService(store)

	// Before deletion the dependent's -50 folds into the head: nothing owed.
	result, err := svc.SettleTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Settlements)

	require.NoError(t, store.DeleteFamily(ctx, family.ID))

	// Detached, the former dependent owes the former head directly.
	result, err = svc.SettleTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, result.Settlements, 1)
	assert.Equal(t, dependent.ID, result.Settlements[0].From.ID)
	assert.Equal(t, head.ID, result.Settlements[0].To.ID)
	assert.True(t, math.Abs(result.Settlements[0].Amount-50) < 0.005)
}
