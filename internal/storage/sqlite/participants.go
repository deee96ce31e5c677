package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

// CreateParticipant persists a new participant.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO participants (id, trip_id, name, family_id, is_head)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.TripID, p.Name, nullable(p.FamilyID), p.IsHead,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	return nil
}

// GetParticipant retrieves a participant by ID.
func (s *SQLiteStore) GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	p := &models.Participant{}
	var familyID sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, trip_id, name, family_id, is_head FROM participants WHERE id = ?",
		participantID,
	).Scan(&p.ID, &p.TripID, &p.Name, &familyID, &p.IsHead)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	p.FamilyID = familyID.String

	return p, nil
}

// ListParticipantsByTrip retrieves all participants for a trip, heads first,
// then by name.
func (s *SQLiteStore) ListParticipantsByTrip(ctx context.Context, tripID string) ([]*models.Participant, error) {
	return s.listParticipants(ctx,
		"SELECT id, trip_id, name, family_id, is_head FROM participants WHERE trip_id = ? ORDER BY is_head DESC, name",
		tripID,
	)
}

// ListSettlingParticipants retrieves only the heads (settling entities) for
// a trip, by name.
func (s *SQLiteStore) ListSettlingParticipants(ctx context.Context, tripID string) ([]*models.Participant, error) {
	return s.listParticipants(ctx,
		"SELECT id, trip_id, name, family_id, is_head FROM participants WHERE trip_id = ? AND is_head = 1 ORDER BY name",
		tripID,
	)
}

// ListFamilyMembers retrieves all participants belonging to a family.
func (s *SQLiteStore) ListFamilyMembers(ctx context.Context, familyID string) ([]*models.Participant, error) {
	return s.listParticipants(ctx,
		"SELECT id, trip_id, name, family_id, is_head FROM participants WHERE family_id = ? ORDER BY is_head DESC, name",
		familyID,
	)
}

func (s *SQLiteStore) listParticipants(ctx context.Context, query string, arg interface{}) ([]*models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		var familyID sql.NullString

		if err := rows.Scan(&p.ID, &p.TripID, &p.Name, &familyID, &p.IsHead); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		p.FamilyID = familyID.String
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// UpdateParticipant updates a participant's name, family, and head flag.
func (s *SQLiteStore) UpdateParticipant(ctx context.Context, p *models.Participant) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE participants SET name = ?, family_id = ?, is_head = ? WHERE id = ?",
		p.Name, nullable(p.FamilyID), p.IsHead, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("participant %s: %w", p.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteParticipant removes a participant by ID.
func (s *SQLiteStore) DeleteParticipant(ctx context.Context, participantID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM participants WHERE id = ?", participantID)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("participant %s: %w", participantID, storage.ErrNotFound)
	}

	return nil
}
