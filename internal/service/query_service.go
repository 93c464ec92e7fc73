package service

import (
	"context"
	"fmt"

	"nomad-nest/internal/models"
	"nomad-nest/internal/repository"

	"go.uber.org/zap"
)

// QueryService serves the aggregated entry and expense views.
type QueryService struct {
	entries  EntryStore
	expenses ExpenseStore
	logger   *zap.Logger
}

func NewQueryService(entries EntryStore, expenses ExpenseStore, logger *zap.Logger) *QueryService {
	return &QueryService{
		entries:  entries,
		expenses: expenses,
		logger:   logger,
	}
}

// ListEntries returns every entry, newest first.
func (s *QueryService) ListEntries(ctx context.Context) ([]*models.EntryDetails, error) {
	entries, err := s.entries.List(ctx, repository.EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// SearchEntries requires at least one filter; an unfiltered search is a
// client error, not a list-all.
func (s *QueryService) SearchEntries(ctx context.Context, filter repository.EntryFilter) ([]*models.EntryDetails, error) {
	if !filter.HasAny() {
		return nil, ErrNoFilter
	}

	entries, err := s.entries.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return entries, nil
}

// SearchExpenses requires at least one filter, same rule as entry search.
func (s *QueryService) SearchExpenses(ctx context.Context, filter repository.ExpenseFilter) ([]*models.ExpenseDetails, error) {
	if !filter.HasAny() {
		return nil, ErrNoFilter
	}

	expenses, err := s.expenses.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search expenses: %w", err)
	}
	return expenses, nil
}
