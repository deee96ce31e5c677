package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tailongswayam2000/trip-planner-backend/internal/auth"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

func newTripService(t *testing.T) *TripService {
	t.Helper()

	store := newTestStore(t)
	jwt := auth.NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	return NewTripService(store, jwt)
}

func TestCreateTrip(t *testing.T) {
	svc := newTripService(t)
	ctx := context.Background()

	t.Run("hashes the access code", func(t *testing.T) {
		trip, err := svc.CreateTrip(ctx, CreateTripParams{
			Name:        "Goa",
			Destination: "Goa",
			StartDate:   "2026-01-10",
			EndDate:     "2026-01-17",
			AccessCode:  "sunny-beaches",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, trip.ID)
		assert.NotEqual(t, "sunny-beaches", trip.AccessCodeHash)
		assert.NoError(t, auth.VerifyAccessCode(trip.AccessCodeHash, "sunny-beaches"))
	})

	t.Run("rejects weak access codes", func(t *testing.T) {
		_, err := svc.CreateTrip(ctx, CreateTripParams{Name: "X", AccessCode: "abc"})
		assert.ErrorIs(t, err, auth.ErrWeakAccessCode)
	})

	t.Run("normalizes answers", func(t *testing.T) {
		trip, err := svc.CreateTrip(ctx, CreateTripParams{
			Name:           "Kerala",
			AccessCode:     "backwaters",
			RecoveryAnswer: "  Rex  ",
			SecurityAnswer: "WANDERERS",
		})
		require.NoError(t, err)
		assert.Equal(t, "rex", trip.RecoveryAnswer)
		assert.Equal(t, "wanderers", trip.SecurityAnswer)
	})
}

func TestJoinTrip(t *testing.T) {
	svc := newTripService(t)
	ctx := context.Background()

	trip, err := svc.CreateTrip(ctx, CreateTripParams{
		Name:             "Goa",
		AccessCode:       "sunny-beaches",
		SecurityQuestion: "Group name?",
		SecurityAnswer:   "wanderers",
	})
	require.NoError(t, err)

	t.Run("valid code and answer yield a token for the trip", func(t *testing.T) {
		token, err := svc.JoinTrip(ctx, trip.ID, "sunny-beaches", "Wanderers")
		require.NoError(t, err)

		claims, err := svc.jwt.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, trip.ID, claims.TripID)
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		_, err := svc.JoinTrip(ctx, trip.ID, "wrong", "wanderers")
		assert.ErrorIs(t, err, auth.ErrInvalidAccessCode)
	})

	t.Run("wrong security answer rejected", func(t *testing.T) {
		_, err := svc.JoinTrip(ctx, trip.ID, "sunny-beaches", "nomads")
		assert.ErrorIs(t, err, auth.ErrWrongAnswer)
	})

	t.Run("unknown trip", func(t *testing.T) {
		_, err := svc.JoinTrip(ctx, "nope", "sunny-beaches", "")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestRecoverAccess(t *testing.T) {
	svc := newTripService(t)
	ctx := context.Background()

	t.Run("correct answer yields a token", func(t *testing.T) {
		trip, err := svc.CreateTrip(ctx, CreateTripParams{
			Name:             "Goa",
			AccessCode:       "sunny-beaches",
			RecoveryQuestion: "First pet?",
			RecoveryAnswer:   "Rex",
		})
		require.NoError(t, err)

		token, err := svc.RecoverAccess(ctx, trip.ID, "rex")
		require.NoError(t, err)

		claims, err := svc.jwt.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, trip.ID, claims.TripID)
	})

	t.Run("recovery unavailable when not configured", func(t *testing.T) {
		trip, err := svc.CreateTrip(ctx, CreateTripParams{
			Name:       "Kerala",
			AccessCode: "backwaters",
		})
		require.NoError(t, err)

		_, err = svc.RecoverAccess(ctx, trip.ID, "anything")
		assert.ErrorIs(t, err, ErrRecoveryNotSet)
	})
}
