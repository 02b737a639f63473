package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and user ID
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	// Create reserves a key. It fails if the user already holds the same key.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Complete records the response for a reserved key
	Complete(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release drops a reservation so the key can be retried
	Release(ctx context.Context, id uuid.UUID) error
	// DeleteExpired removes expired idempotency keys
	DeleteExpired(ctx context.Context) (int64, error)
}
