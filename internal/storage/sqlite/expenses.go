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

// CreateExpense persists a new expense and its split set in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.PaymentTime == 0 {
		expense.PaymentTime = time.Now().Unix()
	}
	if expense.Currency == "" {
		expense.Currency = "INR"
	}
	if expense.ModeOfPayment == "" {
		expense.ModeOfPayment = "UPI"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, trip_id, description, amount, currency, payment_time,
			paid_by_participant, place_id, mode_of_payment, is_personal)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.Description, expense.Amount, expense.Currency,
		expense.PaymentTime, nullable(expense.PaidByParticipant), nullable(expense.PlaceID),
		expense.ModeOfPayment, expense.IsPersonal,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, participantID := range expense.SplitAmong {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, participant_id) VALUES (?, ?)",
			expense.ID, participantID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its split set.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var paidBy, placeID sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, description, amount, currency, payment_time,
			paid_by_participant, place_id, mode_of_payment, is_personal
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.TripID, &expense.Description, &expense.Amount, &expense.Currency,
		&expense.PaymentTime, &paidBy, &placeID, &expense.ModeOfPayment, &expense.IsPersonal)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.PaidByParticipant = paidBy.String
	expense.PlaceID = placeID.String

	if expense.SplitAmong, err = s.expenseSplit(ctx, expense.ID); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpensesByTrip retrieves all expenses for a trip, newest payment
// first, each with its split set.
func (s *SQLiteStore) ListExpensesByTrip(ctx context.Context, tripID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, description, amount, currency, payment_time,
			paid_by_participant, place_id, mode_of_payment, is_personal
		 FROM expenses WHERE trip_id = ? ORDER BY payment_time DESC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var paidBy, placeID sql.NullString

		if err := rows.Scan(&expense.ID, &expense.TripID, &expense.Description, &expense.Amount,
			&expense.Currency, &expense.PaymentTime, &paidBy, &placeID,
			&expense.ModeOfPayment, &expense.IsPersonal); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.PaidByParticipant = paidBy.String
		expense.PlaceID = placeID.String
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if expense.SplitAmong, err = s.expenseSplit(ctx, expense.ID); err != nil {
			return nil, err
		}
	}

	return expenses, nil
}

func (s *SQLiteStore) expenseSplit(ctx context.Context, expenseID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT participant_id FROM expense_splits WHERE expense_id = ? ORDER BY participant_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense split: %w", err)
	}
	defer rows.Close()

	var split []string
	for rows.Next() {
		var participantID string
		if err := rows.Scan(&participantID); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		split = append(split, participantID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense split: %w", err)
	}

	return split, nil
}

// DeleteExpense removes an expense; its split rows cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}

	return nil
}
