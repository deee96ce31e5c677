package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/settlement"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

var settlementsComputed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "tripplanner_settlements_computed_total",
		Help: "Number of settlement computations by outcome.",
	},
	[]string{"outcome"},
)

// SettlementService snapshots a trip's participants, families, and expenses
// and runs the settlement engine over them. Results are derived, never
// persisted; every call recomputes from scratch.
//
// The three reads are not performed inside a transaction, so concurrent
// writes to the same trip can produce a skewed snapshot. Callers that need
// a consistent view must stop mutating the trip before asking for a
// settlement.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// SettleTrip computes the settlement for one trip.
func (s *SettlementService) SettleTrip(ctx context.Context, tripID string) (*models.SettlementResult, error) {
	participants, err := s.store.ListParticipantsByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load participants: %w", err)
	}

	families, err := s.store.ListFamiliesByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load families: %w", err)
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	result := settlement.Settle(participants, families, settlement.Qualifying(expenses))

	outcome := "computed"
	if result.Message != "" {
		outcome = "empty"
	}
	settlementsComputed.WithLabelValues(outcome).Inc()

	slog.Info("settlement computed",
		"trip_id", tripID,
		"participants", len(participants),
		"qualifying_expenses", result.TotalExpenses,
		"transactions", len(result.Settlements),
	)

	return result, nil
}
