package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

// CreatePlace persists a new place.
func (s *SQLiteStore) CreatePlace(ctx context.Context, place *models.Place) error {
	if place.ID == "" {
		place.ID = uuid.New().String()
	}
	if place.Category == "" {
		place.Category = "historical"
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO places (id, trip_id, name, category, estimated_duration, address, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		place.ID, place.TripID, place.Name, place.Category,
		place.EstimatedDuration, nullable(place.Address), nullable(place.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to insert place: %w", err)
	}

	return nil
}

// GetPlace retrieves a place by ID.
func (s *SQLiteStore) GetPlace(ctx context.Context, placeID string) (*models.Place, error) {
	place := &models.Place{}
	var address, notes sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, name, category, estimated_duration, address, notes
		 FROM places WHERE id = ?`,
		placeID,
	).Scan(&place.ID, &place.TripID, &place.Name, &place.Category,
		&place.EstimatedDuration, &address, &notes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("place %s: %w", placeID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}

	place.Address = address.String
	place.Notes = notes.String

	return place, nil
}

// ListPlacesByTrip retrieves all places for a trip, by name.
func (s *SQLiteStore) ListPlacesByTrip(ctx context.Context, tripID string) ([]*models.Place, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, name, category, estimated_duration, address, notes
		 FROM places WHERE trip_id = ? ORDER BY name`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	var places []*models.Place
	for rows.Next() {
		place := &models.Place{}
		var address, notes sql.NullString

		if err := rows.Scan(&place.ID, &place.TripID, &place.Name, &place.Category,
			&place.EstimatedDuration, &address, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		place.Address = address.String
		place.Notes = notes.String
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate places: %w", err)
	}

	return places, nil
}

// UpdatePlace updates an existing place.
func (s *SQLiteStore) UpdatePlace(ctx context.Context, place *models.Place) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE places SET name = ?, category = ?, estimated_duration = ?, address = ?, notes = ?
		 WHERE id = ?`,
		place.Name, place.Category, place.EstimatedDuration,
		nullable(place.Address), nullable(place.Notes), place.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("place %s: %w", place.ID, storage.ErrNotFound)
	}

	return nil
}

// DeletePlace removes a place by ID.
func (s *SQLiteStore) DeletePlace(ctx context.Context, placeID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM places WHERE id = ?", placeID)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("place %s: %w", placeID, storage.ErrNotFound)
	}

	return nil
}
