package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/internal/domain/repository"
	"github.com/sangkips/licorera-api/pkg/apperror"
	"github.com/sangkips/licorera-api/pkg/textmatch"
	"github.com/sangkips/licorera-api/pkg/validation"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	categories   *CategoryService
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	categories *CategoryService,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		categories:   categories,
	}
}

// CreateProductInput represents the create product input. The category is
// given either by id or by name; a name that matches no category creates one.
type CreateProductInput struct {
	Name         string          `json:"name" validate:"notblank"`
	Price        decimal.Decimal `json:"price" validate:"gte=0"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	CategoryID   *uuid.UUID      `json:"category_id" validate:"required_without=CategoryName"`
	CategoryName string          `json:"category_name"`
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, input.CategoryID, input.CategoryName)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price.Round(2),
		Quantity: input.Quantity,
	}
	product.AssignCategory(category)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns every product, or those whose name or category name
// contains search ignoring case.
func (s *ProductService) ListProducts(ctx context.Context, search string) ([]entity.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return textmatch.Filter(search, products, func(p entity.Product) []string {
		return []string{p.Name, p.CategoryName}
	}), nil
}

// UpdateProductInput represents the update product input. Nil fields are left
// unchanged.
type UpdateProductInput struct {
	ID           uuid.UUID        `json:"-"`
	Name         *string          `json:"name" validate:"omitempty,notblank"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Quantity     *int             `json:"quantity" validate:"omitempty,gte=0"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	CategoryName *string          `json:"category_name" validate:"omitempty,notblank"`
}

// UpdateProduct merges the provided fields into the product. Changing the
// category copies the new category's current name.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		product.Price = input.Price.Round(2)
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.CategoryID != nil || input.CategoryName != nil {
		name := ""
		if input.CategoryName != nil {
			name = *input.CategoryName
		}
		category, err := s.resolveCategory(ctx, input.CategoryID, name)
		if err != nil {
			return nil, err
		}
		product.AssignCategory(category)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustQuantityInput moves stock up or down by Delta.
type AdjustQuantityInput struct {
	ID    uuid.UUID `json:"-"`
	Delta int       `json:"delta" validate:"required"`
}

// AdjustQuantity applies a stock correction. Quantity never drops below zero.
func (s *ProductService) AdjustQuantity(ctx context.Context, input *AdjustQuantityInput) (*entity.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product, err := s.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	product.AdjustQuantity(input.Delta)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product. Receipts that sold it keep their copy.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) resolveCategory(ctx context.Context, id *uuid.UUID, name string) (*entity.Category, error) {
	if id != nil {
		category, err := s.categoryRepo.GetByID(ctx, *id)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewFieldError("category_id", "does not exist")
		}
		return category, nil
	}
	return s.categories.ResolveOrCreate(ctx, name)
}
