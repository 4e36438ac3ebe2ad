package service

import (
	"context"
	"time"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"
)

type reportService struct {
	repos       repository.Repositories
	location    *time.Location
	dueSoonDays int
	now         func() time.Time
}

func NewReportService(repos repository.Repositories, location *time.Location, dueSoonDays int) ReportService {
	if location == nil {
		location = time.UTC
	}
	return &reportService{
		repos:       repos,
		location:    location,
		dueSoonDays: dueSoonDays,
		now:         time.Now,
	}
}

// today is the current business date as a UTC midnight, matching how DATE
// columns are scanned.
func (s *reportService) today() time.Time {
	y, m, d := s.now().In(s.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *reportService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	processed, err := s.repos.PurchaseOrders.CountByStatus(ctx, []domain.POStatus{domain.POStatusProcessed}, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	completed, err := s.repos.PurchaseOrders.CountByStatus(ctx, []domain.POStatus{domain.POStatusReturned}, domain.DateRange{})
	if err != nil {
		return nil, err
	}
	// Overdue rentals count as due soon on the dashboard.
	dueSoon, err := s.repos.PurchaseOrders.ListActiveEndingBetween(ctx, time.Time{}, s.today().AddDate(0, 0, s.dueSoonDays))
	if err != nil {
		return nil, err
	}
	totals, err := s.repos.Finance.Totals(ctx, domain.DateRange{})
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		Processed:     processed,
		DueSoon:       len(dueSoon),
		Completed:     completed,
		FinanceTotals: totals,
	}, nil
}

func (s *reportService) GetSummary(ctx context.Context, period domain.DateRange) (*domain.ReportSummary, error) {
	if period.IsSet() && period.End.Before(*period.Start) {
		return nil, domain.NewValidationError("end_date must not be before start_date")
	}

	totals, err := s.repos.Finance.Totals(ctx, period)
	if err != nil {
		return nil, err
	}
	totalPO, err := s.repos.PurchaseOrders.CountByStatus(ctx, nil, period)
	if err != nil {
		return nil, err
	}
	activePO, err := s.repos.PurchaseOrders.CountByStatus(ctx, []domain.POStatus{domain.POStatusProcessed, domain.POStatusActive}, period)
	if err != nil {
		return nil, err
	}

	return &domain.ReportSummary{
		FinanceTotals: totals,
		TotalPO:       totalPO,
		ActivePO:      activePO,
	}, nil
}

func (s *reportService) DueSoon(ctx context.Context) ([]domain.PurchaseOrder, error) {
	today := s.today()
	return s.repos.PurchaseOrders.ListActiveEndingBetween(ctx, today, today.AddDate(0, 0, s.dueSoonDays))
}

func (s *reportService) Overdue(ctx context.Context) ([]domain.PurchaseOrder, error) {
	return s.repos.PurchaseOrders.ListActiveEndingBetween(ctx, time.Time{}, s.today().AddDate(0, 0, -1))
}
