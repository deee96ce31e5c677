// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip-planner storage operations.
// This abstraction allows swapping storage backends (SQLite, Postgres, etc.)
// without changing the service and handler layers.
//
// Settlement results are never stored; they are derived from participants,
// families, and expenses on every request.
type Store interface {
	// Trips
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	ListTrips(ctx context.Context) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, trip *models.Trip) error
	DeleteTrip(ctx context.Context, tripID string) error

	// Places
	CreatePlace(ctx context.Context, place *models.Place) error
	GetPlace(ctx context.Context, placeID string) (*models.Place, error)
	ListPlacesByTrip(ctx context.Context, tripID string) ([]*models.Place, error)
	UpdatePlace(ctx context.Context, place *models.Place) error
	DeletePlace(ctx context.Context, placeID string) error

	// Participants
	CreateParticipant(ctx context.Context, p *models.Participant) error
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)
	// ListParticipantsByTrip returns heads first, then by name.
	ListParticipantsByTrip(ctx context.Context, tripID string) ([]*models.Participant, error)
	// ListSettlingParticipants returns only heads (settling entities).
	ListSettlingParticipants(ctx context.Context, tripID string) ([]*models.Participant, error)
	UpdateParticipant(ctx context.Context, p *models.Participant) error
	DeleteParticipant(ctx context.Context, participantID string) error

	// Families
	// CreateFamily creates the head participant, the family, and links the
	// head to it in a single transaction.
	CreateFamily(ctx context.Context, family *models.Family, head *models.Participant) error
	GetFamily(ctx context.Context, familyID string) (*models.Family, error)
	ListFamiliesByTrip(ctx context.Context, tripID string) ([]*models.Family, error)
	ListFamilyMembers(ctx context.Context, familyID string) ([]*models.Participant, error)
	// DeleteFamily detaches all members (FamilyID cleared, IsHead true)
	// before removing the family, in a single transaction.
	DeleteFamily(ctx context.Context, familyID string) error

	// Expenses (no update: expenses are immutable)
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error

	// Itinerary
	CreateDayPlan(ctx context.Context, plan *models.DayPlan) error
	GetDayPlan(ctx context.Context, planID string) (*models.DayPlan, error)
	ListDayPlansByTrip(ctx context.Context, tripID string) ([]*models.DayPlan, error)
	UpdateDayPlan(ctx context.Context, plan *models.DayPlan) error
	DeleteDayPlan(ctx context.Context, planID string) error
	AddDayPlanPlace(ctx context.Context, entry *models.DayPlanPlace) error
	UpdateDayPlanPlace(ctx context.Context, entry *models.DayPlanPlace) error
	// ReorderDayPlanPlaces sets new order indexes for entries of one day
	// plan, keyed by entry ID. Entries not listed keep their index.
	ReorderDayPlanPlaces(ctx context.Context, planID string, orders map[string]int) error
	DeleteDayPlanPlace(ctx context.Context, planID, entryID string) error

	// Close releases any resources held by the store.
	Close() error
}
