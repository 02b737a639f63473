package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/pkg/pagination"
)

// ReceiptRepository defines the interface for receipt data operations.
// Receipts are append-only: there is no update or delete.
type ReceiptRepository interface {
	// Create writes the receipt and its items in a single transaction.
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Receipt, int64, error)
	// ListBetween returns receipts sold within [from, to], items included.
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Receipt, error)
	Count(ctx context.Context) (int64, error)
}
