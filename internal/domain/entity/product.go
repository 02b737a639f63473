package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a stock item on the store shelf.
// CategoryName is a copy of the category's name taken when the product was
// last written; renaming the category does not update it.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name         string          `gorm:"size:255;not null;index" json:"name"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Quantity     int             `gorm:"not null;default:0" json:"quantity"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	CategoryName string          `gorm:"size:255" json:"category_name"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// AssignCategory points the product at c and snapshots its current name.
func (p *Product) AssignCategory(c *Category) {
	p.CategoryID = c.ID
	p.CategoryName = c.Name
}

// AdjustQuantity adds delta to the stock level, never going below zero.
func (p *Product) AdjustQuantity(delta int) {
	p.Quantity += delta
	if p.Quantity < 0 {
		p.Quantity = 0
	}
}
