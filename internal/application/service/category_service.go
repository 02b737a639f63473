package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/internal/domain/repository"
	"github.com/sangkips/licorera-api/pkg/apperror"
	"github.com/sangkips/licorera-api/pkg/textmatch"
	"github.com/sangkips/licorera-api/pkg/validation"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"notblank"`
	Description *string `json:"description"`
}

// CreateCategory creates a new category. Names are not required to be unique.
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories returns every category, or those whose name contains search
// ignoring case.
func (s *CategoryService) ListCategories(ctx context.Context, search string) ([]entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return textmatch.Filter(search, categories, func(c entity.Category) []string {
		return []string{c.Name}
	}), nil
}

// UpdateCategoryInput represents the update category input. Nil fields are
// left unchanged.
type UpdateCategoryInput struct {
	ID          uuid.UUID `json:"-"`
	Name        *string   `json:"name" validate:"omitempty,notblank"`
	Description *string   `json:"description"`
}

// UpdateCategory merges the provided fields into the category. Products keep
// the category name they were saved with.
func (s *CategoryService) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*entity.Category, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	category, err := s.GetCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = input.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category that no product references. The check and
// the delete are separate statements.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError(fmt.Sprintf(
			"Cannot delete category: there are %d products associated with this category. Please reassign or delete these products first.",
			count,
		))
	}

	return s.categoryRepo.Delete(ctx, id)
}

// ResolveOrCreate returns the id of the first category named exactly name
// (after trimming), creating the category if there is none. Two concurrent
// calls for a new name may both create it.
func (s *CategoryService) ResolveOrCreate(ctx context.Context, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewFieldError("category_name", "is required")
	}

	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	category := &entity.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
