package service

import (
	"context"
	"errors"
	"time"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/utils"
	"genset-rental-backend/internal/validation"

	"github.com/shopspring/decimal"
)

const (
	signatureFolder = "signatures"
	defaultAttempts = 3
)

type purchaseOrderService struct {
	repos    repository.Repositories
	tx       repository.Transactor
	images   ImageStorageService
	attempts int
}

func NewPurchaseOrderService(
	repos repository.Repositories,
	tx repository.Transactor,
	images ImageStorageService,
	attempts int,
) PurchaseOrderService {
	if attempts < 1 {
		attempts = defaultAttempts
	}
	return &purchaseOrderService{
		repos:    repos,
		tx:       tx,
		images:   images,
		attempts: attempts,
	}
}

func (s *purchaseOrderService) CreatePO(ctx context.Context, input domain.CreatePOInput) (*domain.PurchaseOrder, error) {
	logger.EnterMethod(ctx, "purchaseOrderService.CreatePO", "customerID", input.CustomerID, "lines", len(input.Items))

	po, err := s.createPO(ctx, input)
	if err != nil {
		logger.ExitMethodWithError(ctx, "purchaseOrderService.CreatePO", err, isClientError(err), "customerID", input.CustomerID)
		return nil, err
	}

	logger.ExitMethod(ctx, "purchaseOrderService.CreatePO", "poID", po.ID, "poNumber", po.PONumber, "totalCost", po.TotalCost)
	return po, nil
}

func (s *purchaseOrderService) createPO(ctx context.Context, input domain.CreatePOInput) (*domain.PurchaseOrder, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	start, err := utils.ParseDate("rental_start", input.RentalStart)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate("rental_end", input.RentalEnd)
	if err != nil {
		return nil, err
	}
	days, err := utils.RentalDays(start, end)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.POStatusProcessed
	}
	if !status.IsInitial() {
		return nil, domain.NewValidationError("a purchase order cannot be created in status %s", status)
	}

	lines := make([]domain.POLineItem, len(input.Items))
	costs := make([]utils.LineCost, len(input.Items))
	for i, in := range input.Items {
		lines[i] = domain.POLineItem{
			ItemID:    in.ItemID,
			Quantity:  in.Quantity,
			DailyRate: in.DailyRate,
			Subtotal:  utils.LineSubtotal(in.Quantity, in.DailyRate, days),
		}
		costs[i] = utils.LineCost{Quantity: in.Quantity, DailyRate: in.DailyRate}
	}
	total, err := utils.ComputeTotal(start, end, costs)
	if err != nil {
		return nil, err
	}

	customerSig, err := s.images.StoreDataURL(ctx, signatureFolder, input.SignatureCustomer)
	if err != nil {
		return nil, err
	}
	adminSig, err := s.images.StoreDataURL(ctx, signatureFolder, input.SignatureAdmin)
	if err != nil {
		s.discard(ctx, customerSig)
		return nil, err
	}

	po := &domain.PurchaseOrder{
		CustomerID:        input.CustomerID,
		RentalStart:       start,
		RentalEnd:         end,
		TotalCost:         total,
		DPAmount:          input.DPAmount,
		SignatureCustomer: customerSig,
		SignatureAdmin:    adminSig,
		Notes:             input.Notes,
		Status:            status,
	}

	err = retry(ctx, s.attempts, func() error {
		po.ID = 0
		po.Items = append([]domain.POLineItem(nil), lines...)
		return s.tx.WithinTx(ctx, func(r repository.Repositories) error {
			return s.persistPO(ctx, r, po)
		})
	})
	if err != nil {
		s.discard(ctx, customerSig, adminSig)
		return nil, err
	}
	return po, nil
}

// persistPO runs inside the creation transaction.
func (s *purchaseOrderService) persistPO(ctx context.Context, r repository.Repositories, po *domain.PurchaseOrder) error {
	customer, err := r.Customers.GetByID(ctx, po.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("customer %d does not exist", po.CustomerID)
		}
		return err
	}

	ids := distinctItemIDs(po.Items)
	locked, err := r.Items.LockForRental(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[int64]domain.Item, len(locked))
	for _, it := range locked {
		byID[it.ID] = it
	}
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return domain.NewNotFoundError("item", id)
		}
		if it.Status != domain.ItemStatusAvailable {
			return domain.NewConflictError("item "+it.Name+" is not available (status "+string(it.Status)+")", false)
		}
	}

	number, err := r.Sequences.Next(ctx, domain.PONumberPrefix)
	if err != nil {
		return err
	}
	po.PONumber = number

	if err := r.PurchaseOrders.Create(ctx, po); err != nil {
		return err
	}
	if _, err := r.Items.MarkRented(ctx, ids); err != nil {
		return err
	}

	po.CustomerName = customer.Name
	po.CustomerPhone = customer.Phone
	po.CustomerAddress = customer.Address
	po.CustomerKTP = customer.KTPNumber
	return nil
}

func (s *purchaseOrderService) GetPO(ctx context.Context, id int64) (*domain.PODetail, error) {
	po, err := s.repos.PurchaseOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.repos.PurchaseOrders.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	invoices, err := s.repos.Invoices.ListByPO(ctx, id)
	if err != nil {
		return nil, err
	}

	days, err := utils.RentalDays(po.RentalStart, po.RentalEnd)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Subtotal = utils.LineSubtotal(lines[i].Quantity, lines[i].DailyRate, days)
	}
	po.Items = lines

	paid := decimal.Zero
	for _, inv := range invoices {
		paid = paid.Add(inv.Amount)
	}

	return &domain.PODetail{
		PurchaseOrder:    *po,
		RentalDays:       days,
		Invoices:         invoices,
		TotalPaid:        paid,
		RemainingPayment: po.TotalCost.Sub(paid),
	}, nil
}

func (s *purchaseOrderService) ListPOs(ctx context.Context, filter domain.POFilter) ([]domain.PurchaseOrder, domain.Pagination, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.Pagination{}, domain.NewValidationError("unknown status %q", filter.Status)
	}
	orders, total, err := s.repos.PurchaseOrders.List(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return orders, domain.NewPagination(filter.Page, total), nil
}

func (s *purchaseOrderService) UpdateStatus(ctx context.Context, id int64, status domain.POStatus) (*domain.PurchaseOrder, error) {
	logger.EnterMethod(ctx, "purchaseOrderService.UpdateStatus", "poID", id, "status", status)

	if !status.IsValid() {
		err := domain.NewValidationError("unknown status %q", status)
		logger.ExitMethodWithError(ctx, "purchaseOrderService.UpdateStatus", err, true, "poID", id)
		return nil, err
	}

	var (
		po       *domain.PurchaseOrder
		released int64
	)
	err := s.tx.WithinTx(ctx, func(r repository.Repositories) error {
		current, err := r.PurchaseOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(status) {
			return domain.NewInvalidTransitionError(current.Status, status)
		}
		if err := r.PurchaseOrders.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		if status.ReleasesItems() {
			if released, err = r.Items.ReleaseForPO(ctx, id); err != nil {
				return err
			}
		}
		current.Status = status
		current.UpdatedAt = time.Now()
		po = current
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError(ctx, "purchaseOrderService.UpdateStatus", err, isClientError(err), "poID", id)
		return nil, err
	}

	logger.ExitMethod(ctx, "purchaseOrderService.UpdateStatus", "poID", id, "status", status, "releasedItems", released)
	return po, nil
}

func (s *purchaseOrderService) discard(ctx context.Context, refs ...string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.images.Delete(ctx, ref); err != nil {
			logger.FromContext(ctx).Warn("Failed to remove stored signature", "ref", ref, "error", err)
		}
	}
}

func distinctItemIDs(lines []domain.POLineItem) []int64 {
	seen := make(map[int64]bool, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ItemID] {
			seen[l.ItemID] = true
			ids = append(ids, l.ItemID)
		}
	}
	return ids
}
