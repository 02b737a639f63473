package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UncategorizedLabel is used wherever a line item carries no category name.
const UncategorizedLabel = "Uncategorized"

// Receipt is a completed sale. It is written once together with its items
// and never updated afterwards.
type Receipt struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerName string          `gorm:"size:255;not null" json:"customer_name"`
	Date         string          `gorm:"column:sale_date;size:10;not null;index" json:"date"`
	Items        []ReceiptItem   `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE" json:"items"`
	Total        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Timestamp    time.Time       `gorm:"column:sold_at;not null;index" json:"timestamp"`
	CashierID    uuid.UUID       `gorm:"type:uuid;index" json:"cashier_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ItemCount returns the number of units sold on the receipt.
func (r *Receipt) ItemCount() int {
	n := 0
	for _, item := range r.Items {
		n += item.Quantity
	}
	return n
}

// ReceiptItem is a line of a receipt. Every field is a snapshot of the
// product at the moment it was added to the cart.
type ReceiptItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"-"`
	ReceiptID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Position     int             `gorm:"not null;default:0" json:"-"`
	ProductID    uuid.UUID       `gorm:"type:uuid;index" json:"product_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	CategoryName string          `gorm:"size:255" json:"category_name"`
}

// BeforeCreate generates a UUID before creating a new receipt item
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}

// LineTotal returns price × quantity.
func (i ReceiptItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CategoryLabel returns the category name, or UncategorizedLabel when blank.
func (i ReceiptItem) CategoryLabel() string {
	if name := strings.TrimSpace(i.CategoryName); name != "" {
		return name
	}
	return UncategorizedLabel
}
