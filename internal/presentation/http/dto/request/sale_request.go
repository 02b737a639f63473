package request

import "github.com/google/uuid"

// SetCustomerRequest names the customer of the current sale
type SetCustomerRequest struct {
	CustomerName string `json:"customer_name"`
}

// AddCartItemRequest adds one unit of a product to the cart
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

// SetCartItemQuantityRequest sets the quantity of a cart line
type SetCartItemQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// ReceiptItemRequest is one line of a CreateReceiptRequest
type ReceiptItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CreateReceiptRequest builds a receipt without a stored cart
type CreateReceiptRequest struct {
	CustomerName string               `json:"customer_name"`
	Items        []ReceiptItemRequest `json:"items"`
}

// SalesReportQuery selects the report days as YYYY-MM-DD
type SalesReportQuery struct {
	Start string `form:"start"`
	End   string `form:"end"`
}
