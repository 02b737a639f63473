package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateProductRequest represents a product creation request. Either
// category_id or category_name identifies the category.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	CategoryName string          `json:"category_name"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     *int             `json:"quantity"`
	CategoryID   *uuid.UUID       `json:"category_id"`
	CategoryName *string          `json:"category_name"`
}

// AdjustQuantityRequest moves stock by delta units.
type AdjustQuantityRequest struct {
	Delta int `json:"delta"`
}

// SearchQuery is the optional ?search= filter of list endpoints.
type SearchQuery struct {
	Search string `form:"search"`
}
