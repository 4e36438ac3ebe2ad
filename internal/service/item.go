package service

import (
	"context"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/validation"
)

type itemService struct {
	itemRepo repository.ItemRepository
}

func NewItemService(itemRepo repository.ItemRepository) ItemService {
	return &itemService{itemRepo: itemRepo}
}

func (s *itemService) CreateItem(ctx context.Context, input domain.ItemInput) (*domain.Item, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	it := &domain.Item{
		Name:        input.Name,
		Brand:       input.Brand,
		Capacity:    input.Capacity,
		FuelType:    input.FuelType,
		DailyRate:   input.DailyRate,
		Status:      input.Status,
		Description: input.Description,
	}
	if it.Status == "" {
		it.Status = domain.ItemStatusAvailable
	}
	if err := s.itemRepo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *itemService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

// UpdateItem edits the descriptive fields. The status of a rented item is
// owned by its purchase orders and cannot be changed here.
func (s *itemService) UpdateItem(ctx context.Context, id int64, input domain.ItemInput) (*domain.Item, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	it, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = it.Status
	}
	if it.Status == domain.ItemStatusRented && status != domain.ItemStatusRented {
		return nil, domain.NewItemRentedError()
	}

	it.Name = input.Name
	it.Brand = input.Brand
	it.Capacity = input.Capacity
	it.FuelType = input.FuelType
	it.DailyRate = input.DailyRate
	it.Status = status
	it.Description = input.Description
	if err := s.itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id int64) error {
	return s.itemRepo.Delete(ctx, id)
}

func (s *itemService) ListItems(ctx context.Context, status domain.ItemStatus) ([]domain.Item, error) {
	if status != "" && !status.IsValid() {
		return nil, domain.NewValidationError("unknown item status %q", status)
	}
	return s.itemRepo.List(ctx, status)
}
