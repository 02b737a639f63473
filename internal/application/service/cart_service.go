package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/cart"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/internal/domain/repository"
	"github.com/sangkips/licorera-api/pkg/apperror"
	"github.com/sangkips/licorera-api/pkg/validation"
)

// CartService manages the in-progress sale of each signed-in user. Every user
// has exactly one cart, stored under their id.
type CartService struct {
	store       repository.CartStore
	productRepo repository.ProductRepository
	receipts    *ReceiptService
}

// NewCartService creates a new cart service
func NewCartService(store repository.CartStore, productRepo repository.ProductRepository, receipts *ReceiptService) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
		receipts:    receipts,
	}
}

func cartKey(userID uuid.UUID) string {
	return userID.String()
}

// GetCart returns the user's cart, empty if none was started.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	return s.store.Load(ctx, cartKey(userID))
}

func (s *CartService) update(ctx context.Context, userID uuid.UUID, fn func(*cart.Cart) error) (*cart.Cart, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, cartKey(userID), c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetCustomerInput names the customer of the current sale.
type SetCustomerInput struct {
	UserID       uuid.UUID `json:"-"`
	CustomerName string    `json:"customer_name"`
}

// SetCustomer records the customer name. A blank name is accepted here and
// refused at checkout.
func (s *CartService) SetCustomer(ctx context.Context, input *SetCustomerInput) (*cart.Cart, error) {
	return s.update(ctx, input.UserID, func(c *cart.Cart) error {
		c.SetCustomer(input.CustomerName)
		return nil
	})
}

// AddItemInput adds one unit of a product to the cart.
type AddItemInput struct {
	UserID    uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// AddItem adds one unit of the product, capturing its current price.
func (s *CartService) AddItem(ctx context.Context, input *AddItemInput) (*cart.Cart, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	product, err := s.product(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, input.UserID, func(c *cart.Cart) error {
		c.Add(product)
		return nil
	})
}

// SetItemQuantityInput changes the quantity of a cart line.
type SetItemQuantityInput struct {
	UserID    uuid.UUID `json:"-"`
	ProductID uuid.UUID `json:"-"`
	Quantity  *int      `json:"quantity" validate:"required"`
}

// SetItemQuantity sets a line's quantity; below one removes the line.
func (s *CartService) SetItemQuantity(ctx context.Context, input *SetItemQuantityInput) (*cart.Cart, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	return s.update(ctx, input.UserID, func(c *cart.Cart) error {
		if err := c.SetQuantity(input.ProductID, *input.Quantity); err != nil {
			if errors.Is(err, cart.ErrLineNotFound) {
				return apperror.NewNotFoundError("Cart item")
			}
			return err
		}
		return nil
	})
}

// RemoveItem drops a product from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*cart.Cart, error) {
	return s.update(ctx, userID, func(c *cart.Cart) error {
		if !c.Remove(productID) {
			return apperror.NewNotFoundError("Cart item")
		}
		return nil
	})
}

// Clear discards the user's cart.
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Delete(ctx, cartKey(userID))
}

// Checkout generates the receipt for the user's cart and starts a fresh one.
// A refused or failed checkout leaves the cart as it was.
func (s *CartService) Checkout(ctx context.Context, userID uuid.UUID) (*entity.Receipt, error) {
	c, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.receipts.Generate(ctx, userID, c)
	if err != nil {
		return nil, err
	}

	// the receipt is stored at this point; a failed reset is only logged
	c.Reset()
	if err := s.store.Save(ctx, cartKey(userID), c); err != nil {
		s.receipts.log.Error(ctx, "reset cart after checkout", err)
	}
	return receipt, nil
}

func (s *CartService) product(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}
