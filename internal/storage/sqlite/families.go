package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

// CreateFamily creates the head participant, the family, and links the head
// to the family, all in one transaction. The head is inserted first (with no
// family reference), then the family pointing at it, then the head's
// family_id is backfilled.
func (s *SQLiteStore) CreateFamily(ctx context.Context, family *models.Family, head *models.Participant) error {
	if family.ID == "" {
		family.ID = uuid.New().String()
	}
	if head.ID == "" {
		head.ID = uuid.New().String()
	}
	head.TripID = family.TripID
	head.IsHead = true
	head.FamilyID = family.ID
	family.HeadID = head.ID

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO participants (id, trip_id, name, family_id, is_head) VALUES (?, ?, ?, NULL, 1)",
		head.ID, head.TripID, head.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert head participant: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO families (id, trip_id, name, head_id) VALUES (?, ?, ?, ?)",
		family.ID, family.TripID, family.Name, family.HeadID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert family: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE participants SET family_id = ? WHERE id = ?",
		family.ID, head.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to link head to family: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetFamily retrieves a family by ID.
func (s *SQLiteStore) GetFamily(ctx context.Context, familyID string) (*models.Family, error) {
	family := &models.Family{}

	err := s.db.QueryRowContext(ctx,
		"SELECT id, trip_id, name, head_id FROM families WHERE id = ?",
		familyID,
	).Scan(&family.ID, &family.TripID, &family.Name, &family.HeadID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("family %s: %w", familyID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return family, nil
}

// ListFamiliesByTrip retrieves all families for a trip, by name.
func (s *SQLiteStore) ListFamiliesByTrip(ctx context.Context, tripID string) ([]*models.Family, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, trip_id, name, head_id FROM families WHERE trip_id = ? ORDER BY name",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	defer rows.Close()

	var families []*models.Family
	for rows.Next() {
		family := &models.Family{}
		if err := rows.Scan(&family.ID, &family.TripID, &family.Name, &family.HeadID); err != nil {
			return nil, fmt.Errorf("failed to scan family: %w", err)
		}
		families = append(families, family)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate families: %w", err)
	}

	return families, nil
}

// DeleteFamily detaches all members (making them independent heads) and
// removes the family, in one transaction.
func (s *SQLiteStore) DeleteFamily(ctx context.Context, familyID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE participants SET family_id = NULL, is_head = 1 WHERE family_id = ?",
		familyID,
	)
	if err != nil {
		return fmt.Errorf("failed to detach family members: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM families WHERE id = ?", familyID)
	if err != nil {
		return fmt.Errorf("failed to delete family: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("family %s: %w", familyID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
