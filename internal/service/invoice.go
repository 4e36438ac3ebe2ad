package service

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/utils"
	"genset-rental-backend/internal/validation"
)

type invoiceService struct {
	repos    repository.Repositories
	tx       repository.Transactor
	attempts int
}

func NewInvoiceService(repos repository.Repositories, tx repository.Transactor, attempts int) InvoiceService {
	if attempts < 1 {
		attempts = defaultAttempts
	}
	return &invoiceService{repos: repos, tx: tx, attempts: attempts}
}

// RecordPayment stores the invoice and its mirrored income entry atomically.
func (s *invoiceService) RecordPayment(ctx context.Context, input domain.RecordPaymentInput) (*domain.PaymentReceipt, error) {
	logger.EnterMethod(ctx, "invoiceService.RecordPayment", "poID", input.POID, "amount", input.Amount, "type", input.PaymentType)

	receipt, err := s.recordPayment(ctx, input)
	if err != nil {
		logger.ExitMethodWithError(ctx, "invoiceService.RecordPayment", err, isClientError(err), "poID", input.POID)
		return nil, err
	}

	if receipt.Overpaid {
		logger.FromContext(ctx).Warn("Purchase order overpaid",
			"poID", input.POID,
			"invoiceNumber", receipt.Invoice.InvoiceNumber,
			"totalPaid", receipt.TotalPaid,
			"remaining", receipt.RemainingPayment)
	}

	logger.ExitMethod(ctx, "invoiceService.RecordPayment", "invoiceID", receipt.Invoice.ID, "invoiceNumber", receipt.Invoice.InvoiceNumber)
	return receipt, nil
}

func (s *invoiceService) recordPayment(ctx context.Context, input domain.RecordPaymentInput) (*domain.PaymentReceipt, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	paymentDate, err := utils.ParseDate("payment_date", input.PaymentDate)
	if err != nil {
		return nil, err
	}

	var receipt *domain.PaymentReceipt
	err = retry(ctx, s.attempts, func() error {
		return s.tx.WithinTx(ctx, func(r repository.Repositories) error {
			po, err := r.PurchaseOrders.GetForUpdate(ctx, input.POID)
			if err != nil {
				return err
			}
			if po.Status == domain.POStatusCancelled {
				return domain.NewValidationError("purchase order %s is cancelled", po.PONumber)
			}

			number, err := r.Sequences.Next(ctx, domain.InvoiceNumberPrefix)
			if err != nil {
				return err
			}

			inv := &domain.Invoice{
				InvoiceNumber: number,
				POID:          po.ID,
				PONumber:      po.PONumber,
				CustomerName:  po.CustomerName,
				Amount:        input.Amount,
				PaymentType:   input.PaymentType,
				PaymentDate:   paymentDate,
				Notes:         input.Notes,
			}
			if err := r.Invoices.Create(ctx, inv); err != nil {
				return err
			}

			entry := domain.NewInvoiceIncomeEntry(inv)
			if err := r.Finance.Create(ctx, entry); err != nil {
				return err
			}

			paid, err := r.Invoices.SumByPO(ctx, po.ID)
			if err != nil {
				return err
			}
			remaining := po.TotalCost.Sub(paid)

			receipt = &domain.PaymentReceipt{
				Invoice:          *inv,
				FinanceEntryID:   entry.ID,
				TotalPaid:        paid,
				RemainingPayment: remaining,
				Overpaid:         remaining.IsNegative(),
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.repos.Invoices.GetByID(ctx, id)
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.Invoice, domain.Pagination, error) {
	invoices, total, err := s.repos.Invoices.List(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return invoices, domain.NewPagination(filter.Page, total), nil
}
