package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tailongswayam2000/trip-planner-backend/internal/auth"
	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

// ErrRecoveryNotSet is returned when a trip has no recovery answer
// configured and access recovery is attempted.
var ErrRecoveryNotSet = errors.New("recovery is not configured for this trip")

// TripService handles trip creation and access-code flows. Access codes
// are bcrypt-hashed before storage; joining or recovering a trip yields a
// trip-scoped JWT.
type TripService struct {
	store storage.Store
	jwt   *auth.JWTManager
}

// NewTripService creates a new TripService.
func NewTripService(store storage.Store, jwt *auth.JWTManager) *TripService {
	return &TripService{store: store, jwt: jwt}
}

// CreateTripParams carries the fields needed to create a trip.
type CreateTripParams struct {
	Name             string
	Destination      string
	StartDate        string
	EndDate          string
	Budget           float64
	Currency         string
	AccessCode       string
	RecoveryQuestion string
	RecoveryAnswer   string
	SecurityQuestion string
	SecurityAnswer   string
}

// CreateTrip validates and hashes the access code, normalizes the answers,
// and persists the trip.
func (s *TripService) CreateTrip(ctx context.Context, params CreateTripParams) (*models.Trip, error) {
	if err := auth.ValidateAccessCode(params.AccessCode); err != nil {
		return nil, err
	}

	hash, err := auth.HashAccessCode(params.AccessCode)
	if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		Name:             params.Name,
		Destination:      params.Destination,
		StartDate:        params.StartDate,
		EndDate:          params.EndDate,
		Budget:           params.Budget,
		Currency:         params.Currency,
		AccessCodeHash:   hash,
		RecoveryQuestion: params.RecoveryQuestion,
		RecoveryAnswer:   auth.NormalizeAnswer(params.RecoveryAnswer),
		SecurityQuestion: params.SecurityQuestion,
		SecurityAnswer:   auth.NormalizeAnswer(params.SecurityAnswer),
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}

	slog.Info("trip created", "trip_id", trip.ID, "name", trip.Name)

	return trip, nil
}

// JoinTrip verifies the access code (and the security answer, when the
// trip has one configured) and returns a trip token.
func (s *TripService) JoinTrip(ctx context.Context, tripID, accessCode, securityAnswer string) (string, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return "", err
	}

	if err := auth.VerifyAccessCode(trip.AccessCodeHash, accessCode); err != nil {
		slog.Warn("trip join rejected", "trip_id", tripID)
		return "", err
	}
	if err := auth.VerifyAnswer(trip.SecurityAnswer, securityAnswer); err != nil {
		slog.Warn("trip join rejected on security answer", "trip_id", tripID)
		return "", err
	}

	return s.jwt.Generate(trip.ID)
}

// RecoverAccess verifies the recovery answer and returns a trip token.
// Because access codes are stored hashed, recovery cannot reveal the code;
// it grants access directly instead.
func (s *TripService) RecoverAccess(ctx context.Context, tripID, recoveryAnswer string) (string, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return "", err
	}

	if trip.RecoveryAnswer == "" {
		return "", ErrRecoveryNotSet
	}
	if err := auth.VerifyAnswer(trip.RecoveryAnswer, recoveryAnswer); err != nil {
		slog.Warn("trip recovery rejected", "trip_id", tripID)
		return "", err
	}

	return s.jwt.Generate(trip.ID)
}
