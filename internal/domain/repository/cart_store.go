package repository

import (
	"context"

	"github.com/sangkips/licorera-api/internal/domain/cart"
)

// CartStore keeps one cart per operator session between requests.
type CartStore interface {
	// Load returns the stored cart for key, or an empty cart if none exists.
	Load(ctx context.Context, key string) (*cart.Cart, error)
	Save(ctx context.Context, key string, c *cart.Cart) error
	Delete(ctx context.Context, key string) error
}
