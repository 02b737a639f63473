// Package cart holds the in-progress sale of a single operator session.
//
// A Cart is a plain value: it is serialised between requests by a cart store
// and is only ever mutated through the methods below. It becomes a Receipt
// through Finalize.
package cart

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	// ErrMissingCustomer is returned by Validate when no customer name is set.
	ErrMissingCustomer = errors.New("customer name is required")
	// ErrEmpty is returned by Validate when the cart has no lines.
	ErrEmpty = errors.New("cart has no items")
	// ErrLineNotFound is returned when a product is not in the cart.
	ErrLineNotFound = errors.New("product is not in the cart")
)

// State is the builder state derived from the cart's contents.
type State string

const (
	StateEmpty    State = "empty"
	StateBuilding State = "building"
)

// Line is one product entry in the cart.
type Line struct {
	ProductID    uuid.UUID       `json:"product_id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	CategoryName string          `json:"category_name"`
}

// Total returns price × quantity for the line.
func (l Line) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered set of lines keyed by product id.
type Cart struct {
	CustomerName string    `json:"customer_name"`
	Lines        []Line    `json:"lines"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Lines: []Line{}}
}

// State reports whether the cart is empty or being built.
func (c *Cart) State() State {
	if len(c.Lines) == 0 {
		return StateEmpty
	}
	return StateBuilding
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Line returns the line for productID, if present.
func (c *Cart) Line(productID uuid.UUID) (Line, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i], true
	}
	return Line{}, false
}

// Add puts one unit of p in the cart. A product already present has its
// quantity incremented; otherwise a new line is appended with the product's
// current name, price and category captured.
func (c *Cart) Add(p *entity.Product) {
	if i := c.indexOf(p.ID); i >= 0 {
		c.Lines[i].Quantity++
		c.touch()
		return
	}
	c.Lines = append(c.Lines, Line{
		ProductID:    p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Quantity:     1,
		CategoryName: p.CategoryName,
	})
	c.touch()
}

// Remove drops the line for productID. It reports whether a line was removed.
func (c *Cart) Remove(productID uuid.UUID) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	c.touch()
	return true
}

// SetQuantity sets the quantity of an existing line. n < 1 removes the line.
func (c *Cart) SetQuantity(productID uuid.UUID, n int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	if n < 1 {
		c.Remove(productID)
		return nil
	}
	c.Lines[i].Quantity = n
	c.touch()
	return nil
}

// SetCustomer records who the sale is for.
func (c *Cart) SetCustomer(name string) {
	c.CustomerName = name
	c.touch()
}

// Total sums the lines using the prices captured at add time.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Total())
	}
	return total
}

// ItemCount returns the number of units across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Validate checks the cart can be turned into a receipt. Every problem found
// is reported; use errors.Is with ErrMissingCustomer or ErrEmpty.
func (c *Cart) Validate() error {
	var errs []error
	if strings.TrimSpace(c.CustomerName) == "" {
		errs = append(errs, ErrMissingCustomer)
	}
	if len(c.Lines) == 0 {
		errs = append(errs, ErrEmpty)
	}
	return errors.Join(errs...)
}

// Finalize validates the cart and builds the receipt for a sale made at now.
// The receipt date is now's calendar date in now's location. The cart itself
// is left untouched; callers reset it once the receipt is stored.
func (c *Cart) Finalize(now time.Time) (*entity.Receipt, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	items := make([]entity.ReceiptItem, 0, len(c.Lines))
	for i, l := range c.Lines {
		items = append(items, entity.ReceiptItem{
			Position:     i,
			ProductID:    l.ProductID,
			Name:         l.Name,
			Price:        l.Price,
			Quantity:     l.Quantity,
			CategoryName: l.CategoryName,
		})
	}

	return &entity.Receipt{
		CustomerName: strings.TrimSpace(c.CustomerName),
		Date:         now.Format(time.DateOnly),
		Items:        items,
		Total:        c.Total(),
		Timestamp:    now,
	}, nil
}

// Reset empties the cart and clears the customer.
func (c *Cart) Reset() {
	c.CustomerName = ""
	c.Lines = []Line{}
	c.touch()
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now().UTC()
}
