package service

import (
	"context"
	"fmt"
	"time"

	"nomad-nest/internal/models"
	"nomad-nest/internal/repository"

	"go.uber.org/zap"
)

// AddExpenseInput is a standalone expense attached to an existing entry.
// Zero values fall back to the documented defaults.
type AddExpenseInput struct {
	Amount   float64
	Currency string
	Category string
}

// ExpenseService manages standalone expense line items.
type ExpenseService struct {
	entries   EntryStore
	expenses  ExpenseStore
	allocator Allocator
	logger    *zap.Logger
}

func NewExpenseService(entries EntryStore, expenses ExpenseStore, allocator Allocator, logger *zap.Logger) *ExpenseService {
	return &ExpenseService{
		entries:   entries,
		expenses:  expenses,
		allocator: allocator,
		logger:    logger,
	}
}

// Add records one expense against an existing entry and returns its id.
func (s *ExpenseService) Add(ctx context.Context, entryID, userID string, in AddExpenseInput) (string, error) {
	exists, err := s.entries.Exists(ctx, entryID)
	if err != nil {
		return "", fmt.Errorf("failed to check entry: %w", err)
	}
	if !exists {
		return "", ErrEntryNotFound
	}

	expenseID, err := s.allocator.Allocate(ctx, "expenses", "expense_id")
	if err != nil {
		return "", fmt.Errorf("failed to allocate expense id: %w", err)
	}

	if in.Currency == "" {
		in.Currency = "USD"
	}
	if in.Category == "" {
		in.Category = "Other"
	}

	expense := &models.Expense{
		ID:        expenseID,
		EntryID:   entryID,
		UserID:    userID,
		Category:  in.Category,
		Amount:    in.Amount,
		Currency:  in.Currency,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.expenses.Insert(ctx, expense); err != nil {
		return "", fmt.Errorf("failed to insert expense: %w", err)
	}

	return expenseID, nil
}

// Update changes the provided fields of one expense. Asking for an update
// with no fields is a client error. Rows still inside the write-settle
// window surface as repository.ErrWriteBuffered.
func (s *ExpenseService) Update(ctx context.Context, entryID, expenseID string, upd repository.ExpenseUpdate) error {
	if !upd.HasAny() {
		return ErrNoFields
	}
	return s.expenses.Update(ctx, entryID, expenseID, upd)
}

func (s *ExpenseService) Delete(ctx context.Context, expenseID string) error {
	return s.expenses.DeleteByID(ctx, expenseID)
}

func (s *ExpenseService) DeleteByEntry(ctx context.Context, entryID string) error {
	return s.expenses.DeleteByEntry(ctx, entryID)
}
