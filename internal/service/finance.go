package service

import (
	"context"
	"strings"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/utils"
	"genset-rental-backend/internal/validation"
)

type financeService struct {
	financeRepo repository.FinanceRepository
}

func NewFinanceService(financeRepo repository.FinanceRepository) FinanceService {
	return &financeService{financeRepo: financeRepo}
}

// CreateEntry records a manual income or expense. Entries mirrored from
// invoices are written by the invoice service only.
func (s *financeService) CreateEntry(ctx context.Context, input domain.FinanceEntryInput) (*domain.FinanceEntry, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	date, err := utils.ParseDate("transaction_date", input.TransactionDate)
	if err != nil {
		return nil, err
	}

	entry := &domain.FinanceEntry{
		TransactionType: input.TransactionType,
		Amount:          input.Amount,
		Description:     strings.TrimSpace(input.Description),
		TransactionDate: date,
	}
	if err := s.financeRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *financeService) ListEntries(ctx context.Context, filter domain.FinanceFilter) ([]domain.FinanceEntry, domain.Pagination, error) {
	if filter.Type != "" && !filter.Type.IsValid() {
		return nil, domain.Pagination{}, domain.NewValidationError("unknown transaction type %q", filter.Type)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, domain.Pagination{}, domain.NewValidationError("end_date must not be before start_date")
	}
	entries, total, err := s.financeRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return entries, domain.NewPagination(filter.Page, total), nil
}
