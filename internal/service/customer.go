package service

import (
	"context"
	"strings"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/validation"
)

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func customerFromInput(input domain.CustomerInput) *domain.Customer {
	return &domain.Customer{
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		KTPNumber: strings.TrimSpace(input.KTPNumber),
		Phone:     strings.TrimSpace(input.Phone),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, input domain.CustomerInput) (*domain.Customer, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	c := customerFromInput(input)
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Customer created", "customerID", c.ID)
	return c, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int64, input domain.CustomerInput) (*domain.Customer, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	c := customerFromInput(input)
	c.ID = id
	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	return s.customerRepo.Delete(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context, filter domain.CustomerFilter) ([]domain.Customer, domain.Pagination, error) {
	customers, total, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	return customers, domain.NewPagination(filter.Page, total), nil
}
