package response

import (
	"github.com/sangkips/licorera-api/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// CartResponse is the current state of a user's receipt builder.
type CartResponse struct {
	CustomerName string          `json:"customer_name"`
	State        cart.State      `json:"state"`
	Items        []CartLine      `json:"items"`
	ItemCount    int             `json:"item_count"`
	Total        decimal.Decimal `json:"total"`
}

// CartLine is one cart line with its computed total.
type CartLine struct {
	cart.Line
	LineTotal decimal.Decimal `json:"line_total"`
}

// NewCartResponse builds the response for c.
func NewCartResponse(c *cart.Cart) *CartResponse {
	items := make([]CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, CartLine{Line: l, LineTotal: l.Total()})
	}
	return &CartResponse{
		CustomerName: c.CustomerName,
		State:        c.State(),
		Items:        items,
		ItemCount:    c.ItemCount(),
		Total:        c.Total(),
	}
}
