package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tailongswayam2000/trip-planner-backend/internal/models"
	"github.com/tailongswayam2000/trip-planner-backend/internal/storage"
)

// CreateDayPlan persists a new itinerary day.
func (s *SQLiteStore) CreateDayPlan(ctx context.Context, plan *models.DayPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO day_plans (id, trip_id, date) VALUES (?, ?, ?)",
		plan.ID, plan.TripID, plan.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to insert day plan: %w", err)
	}

	return nil
}

// GetDayPlan retrieves a single itinerary day with its place entries.
func (s *SQLiteStore) GetDayPlan(ctx context.Context, planID string) (*models.DayPlan, error) {
	plan := &models.DayPlan{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, trip_id, date FROM day_plans WHERE id = ?",
		planID,
	).Scan(&plan.ID, &plan.TripID, &plan.Date)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("day plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day plan: %w", err)
	}

	if plan.Places, err = s.dayPlanPlaces(ctx, plan.ID); err != nil {
		return nil, err
	}

	return plan, nil
}

// ListDayPlansByTrip retrieves a trip's itinerary days in date order, each
// with its place entries in visit order.
func (s *SQLiteStore) ListDayPlansByTrip(ctx context.Context, tripID string) ([]*models.DayPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, trip_id, date FROM day_plans WHERE trip_id = ? ORDER BY date",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list day plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.DayPlan
	for rows.Next() {
		plan := &models.DayPlan{}
		if err := rows.Scan(&plan.ID, &plan.TripID, &plan.Date); err != nil {
			return nil, fmt.Errorf("failed to scan day plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day plans: %w", err)
	}

	for _, plan := range plans {
		if plan.Places, err = s.dayPlanPlaces(ctx, plan.ID); err != nil {
			return nil, err
		}
	}

	return plans, nil
}

func (s *SQLiteStore) dayPlanPlaces(ctx context.Context, planID string) ([]models.DayPlanPlace, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, day_plan_id, place_id, start_time, end_time, order_index, travel_time_to_next
		 FROM day_plan_places WHERE day_plan_id = ? ORDER BY order_index`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get day plan places: %w", err)
	}
	defer rows.Close()

	var entries []models.DayPlanPlace
	for rows.Next() {
		var entry models.DayPlanPlace
		var startTime, endTime, travelTime sql.NullString

		if err := rows.Scan(&entry.ID, &entry.DayPlanID, &entry.PlaceID,
			&startTime, &endTime, &entry.OrderIndex, &travelTime); err != nil {
			return nil, fmt.Errorf("failed to scan day plan place: %w", err)
		}
		entry.StartTime = startTime.String
		entry.EndTime = endTime.String
		entry.TravelTimeToNext = travelTime.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate day plan places: %w", err)
	}

	return entries, nil
}

// UpdateDayPlan moves an itinerary day to a new date.
func (s *SQLiteStore) UpdateDayPlan(ctx context.Context, plan *models.DayPlan) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE day_plans SET date = ? WHERE id = ?",
		plan.Date, plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update day plan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("day plan %s: %w", plan.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteDayPlan removes an itinerary day; its place entries cascade.
func (s *SQLiteStore) DeleteDayPlan(ctx context.Context, planID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM day_plans WHERE id = ?", planID)
	if err != nil {
		return fmt.Errorf("failed to delete day plan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("day plan %s: %w", planID, storage.ErrNotFound)
	}

	return nil
}

// AddDayPlanPlace appends a place entry to an itinerary day.
func (s *SQLiteStore) AddDayPlanPlace(ctx context.Context, entry *models.DayPlanPlace) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO day_plan_places (id, day_plan_id, place_id, start_time, end_time, order_index, travel_time_to_next)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.DayPlanID, entry.PlaceID,
		nullable(entry.StartTime), nullable(entry.EndTime),
		entry.OrderIndex, nullable(entry.TravelTimeToNext),
	)
	if err != nil {
		return fmt.Errorf("failed to insert day plan place: %w", err)
	}

	return nil
}

// UpdateDayPlanPlace rewrites one place entry. The update is scoped to the
// entry's day plan, so an entry cannot be moved between days this way.
func (s *SQLiteStore) UpdateDayPlanPlace(ctx context.Context, entry *models.DayPlanPlace) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE day_plan_places
		 SET place_id = ?, start_time = ?, end_time = ?, order_index = ?, travel_time_to_next = ?
		 WHERE id = ? AND day_plan_id = ?`,
		entry.PlaceID,
		nullable(entry.StartTime), nullable(entry.EndTime),
		entry.OrderIndex, nullable(entry.TravelTimeToNext),
		entry.ID, entry.DayPlanID,
	)
	if err != nil {
		return fmt.Errorf("failed to update day plan place: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("day plan place %s: %w", entry.ID, storage.ErrNotFound)
	}

	return nil
}

// ReorderDayPlanPlaces applies new order indexes to a day's entries in one
// transaction. Entry IDs that do not belong to the plan are ignored.
func (s *SQLiteStore) ReorderDayPlanPlaces(ctx context.Context, planID string, orders map[string]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for entryID, orderIndex := range orders {
		_, err := tx.ExecContext(ctx,
			"UPDATE day_plan_places SET order_index = ? WHERE id = ? AND day_plan_id = ?",
			orderIndex, entryID, planID,
		)
		if err != nil {
			return fmt.Errorf("failed to reorder day plan place %s: %w", entryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}

	return nil
}

// DeleteDayPlanPlace removes one place entry from an itinerary day.
func (s *SQLiteStore) DeleteDayPlanPlace(ctx context.Context, planID, entryID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM day_plan_places WHERE id = ? AND day_plan_id = ?",
		entryID, planID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete day plan place: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("day plan place %s: %w", entryID, storage.ErrNotFound)
	}

	return nil
}
