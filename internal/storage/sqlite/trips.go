package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

// CreateTrip persists a new trip to the database.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}
	if trip.Currency == "" {
		trip.Currency = "USD"
	}
	if trip.Status == "" {
		trip.Status = "upcoming"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trips (id, name, destination, start_date, end_date, budget, currency, status,
			access_code_hash, recovery_question, recovery_answer, security_question, security_answer, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trip.ID, trip.Name, trip.Destination, trip.StartDate, trip.EndDate, trip.Budget,
		trip.Currency, trip.Status, trip.AccessCodeHash,
		nullable(trip.RecoveryQuestion), nullable(trip.RecoveryAnswer),
		nullable(trip.SecurityQuestion), nullable(trip.SecurityAnswer),
		trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	return nil
}

// GetTrip retrieves a trip by ID.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, destination, start_date, end_date, budget, currency, status,
			access_code_hash, recovery_question, recovery_answer, security_question, security_answer, created_at
		 FROM trips WHERE id = ?`,
		tripID,
	)

	trip, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

// ListTrips retrieves all trips, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, destination, start_date, end_date, budget, currency, status,
			access_code_hash, recovery_question, recovery_answer, security_question, security_answer, created_at
		 FROM trips ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	return trips, nil
}

// UpdateTrip updates a trip's editable fields. The access code hash and
// recovery/security fields are set at creation and left untouched here.
func (s *SQLiteStore) UpdateTrip(ctx context.Context, trip *models.Trip) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE trips SET name = ?, destination = ?, start_date = ?, end_date = ?,
			budget = ?, currency = ?, status = ?
		 WHERE id = ?`,
		trip.Name, trip.Destination, trip.StartDate, trip.EndDate,
		trip.Budget, trip.Currency, trip.Status, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", trip.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteTrip removes a trip; owned rows cascade.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(row rowScanner) (*models.Trip, error) {
	trip := &models.Trip{}
	var recoveryQ, recoveryA, securityQ, securityA sql.NullString

	err := row.Scan(&trip.ID, &trip.Name, &trip.Destination, &trip.StartDate, &trip.EndDate,
		&trip.Budget, &trip.Currency, &trip.Status, &trip.AccessCodeHash,
		&recoveryQ, &recoveryA, &securityQ, &securityA, &trip.CreatedAt)
	if err != nil {
		return nil, err
	}

	trip.RecoveryQuestion = recoveryQ.String
	trip.RecoveryAnswer = recoveryA.String
	trip.SecurityQuestion = securityQ.String
	trip.SecurityAnswer = securityA.String

	return trip, nil
}
