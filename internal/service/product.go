package service

import (
	"context"
	"strings"

	"genset-rental-backend/internal/domain"
	"genset-rental-backend/internal/logger"
	"genset-rental-backend/internal/repository"
	"genset-rental-backend/internal/validation"
)

const productImageFolder = "products"

type productService struct {
	productRepo repository.ProductRepository
	images      ImageStorageService
}

func NewProductService(productRepo repository.ProductRepository, images ImageStorageService) ProductService {
	return &productService{productRepo: productRepo, images: images}
}

func (s *productService) ListProducts(ctx context.Context, onlyActive bool) ([]domain.Product, error) {
	return s.productRepo.List(ctx, onlyActive)
}

func (s *productService) CreateProduct(ctx context.Context, input domain.ProductInput, image *domain.Upload) (*domain.Product, error) {
	logger.EnterMethod(ctx, "productService.CreateProduct", "name", input.Name)

	if err := validation.Struct(input); err != nil {
		logger.ExitMethodWithError(ctx, "productService.CreateProduct", err, true)
		return nil, err
	}

	p := &domain.Product{}
	applyProductInput(p, input)
	if p.Status == "" {
		p.Status = domain.ProductStatusActive
	}

	if image != nil {
		ref, err := s.images.StoreUpload(ctx, productImageFolder, image)
		if err != nil {
			logger.ExitMethodWithError(ctx, "productService.CreateProduct", err, isClientError(err))
			return nil, err
		}
		p.Image = &ref
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		if p.Image != nil {
			s.discardImage(ctx, *p.Image)
		}
		logger.ExitMethodWithError(ctx, "productService.CreateProduct", err, isClientError(err))
		return nil, err
	}

	logger.ExitMethod(ctx, "productService.CreateProduct", "productID", p.ID)
	return p, nil
}

// UpdateProduct replaces the editable fields. A new image replaces the
// stored one, which is removed once the row is updated.
func (s *productService) UpdateProduct(ctx context.Context, id int64, input domain.ProductInput, image *domain.Upload) (*domain.Product, error) {
	logger.EnterMethod(ctx, "productService.UpdateProduct", "productID", id)

	if err := validation.Struct(input); err != nil {
		logger.ExitMethodWithError(ctx, "productService.UpdateProduct", err, true)
		return nil, err
	}
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError(ctx, "productService.UpdateProduct", err, isClientError(err))
		return nil, err
	}

	previous := p.Image
	status := p.Status
	applyProductInput(p, input)
	if p.Status == "" {
		p.Status = status
	}

	if image != nil {
		ref, err := s.images.StoreUpload(ctx, productImageFolder, image)
		if err != nil {
			logger.ExitMethodWithError(ctx, "productService.UpdateProduct", err, isClientError(err))
			return nil, err
		}
		p.Image = &ref
	}

	if err := s.productRepo.Update(ctx, p); err != nil {
		if image != nil {
			s.discardImage(ctx, *p.Image)
		}
		logger.ExitMethodWithError(ctx, "productService.UpdateProduct", err, isClientError(err))
		return nil, err
	}
	if image != nil && previous != nil {
		s.discardImage(ctx, *previous)
	}

	logger.ExitMethod(ctx, "productService.UpdateProduct", "productID", p.ID)
	return p, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) error {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	if p.Image != nil {
		s.discardImage(ctx, *p.Image)
	}
	return nil
}

func (s *productService) discardImage(ctx context.Context, ref string) {
	if err := s.images.Delete(ctx, ref); err != nil {
		logger.FromContext(ctx).Warn("Failed to remove product image", "image", ref, "error", err)
	}
}

func applyProductInput(p *domain.Product, input domain.ProductInput) {
	p.Name = strings.TrimSpace(input.Name)
	p.Brand = input.Brand
	p.Capacity = input.Capacity
	p.PowerOutput = input.PowerOutput
	p.FuelType = input.FuelType
	p.DailyRate = input.DailyRate
	p.Description = input.Description
	p.Features = input.Features
	p.DisplayOrder = input.DisplayOrder
	p.Status = input.Status
}
