package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/licorera-api/internal/config"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrAdminPasswordMissing is returned when no admin exists and none can be
// created because ADMIN_PASSWORD is empty.
var ErrAdminPasswordMissing = errors.New("ADMIN_PASSWORD is not set; no operator account can be created")

// SeedAdmin creates the operator account from cfg when no user with that
// email exists yet. It reports whether a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg config.AdminConfig) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" {
		return false, errors.New("ADMIN_EMAIL is empty")
	}

	var count int64
	if err := db.WithContext(ctx).Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if cfg.Password == "" {
		return false, ErrAdminPasswordMissing
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	user := &entity.User{Name: cfg.Name, Email: email, Password: hash}
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return false, err
	}
	return true, nil
}

type sampleProduct struct {
	name     string
	price    string
	quantity int
	category string
}

var sampleCategories = []entity.Category{
	{Name: "Whiskey", Description: strPtr("Various types of whiskey")},
	{Name: "Vodka", Description: strPtr("Premium and standard vodkas")},
	{Name: "Rum", Description: strPtr("White, dark, and spiced rums")},
	{Name: "Gin", Description: strPtr("London dry and flavored gins")},
	{Name: "Tequila", Description: strPtr("Blanco, reposado, and añejo tequilas")},
}

var sampleProducts = []sampleProduct{
	{"Jack Daniel's", "29.99", 10, "Whiskey"},
	{"Absolut Vodka", "24.99", 15, "Vodka"},
	{"Bacardi Superior", "19.99", 20, "Rum"},
	{"Bombay Sapphire", "27.99", 12, "Gin"},
	{"Patrón Silver", "49.99", 8, "Tequila"},
}

// SeedSampleCatalog replaces every category and product with the demo
// catalogue: five spirits categories with one product each. Receipts and
// users are left alone.
func SeedSampleCatalog(ctx context.Context, db *gorm.DB) (categories, products int, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped()
		if err := all.Delete(&entity.Product{}).Error; err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		if err := all.Delete(&entity.Category{}).Error; err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}

		byName := make(map[string]*entity.Category, len(sampleCategories))
		for _, c := range sampleCategories {
			c := c
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("create category %s: %w", c.Name, err)
			}
			byName[c.Name] = &c
			categories++
		}

		for _, sp := range sampleProducts {
			p := entity.Product{
				Name:     sp.name,
				Price:    decimal.RequireFromString(sp.price),
				Quantity: sp.quantity,
			}
			p.AssignCategory(byName[sp.category])
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("create product %s: %w", sp.name, err)
			}
			products++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return categories, products, nil
}

func strPtr(s string) *string { return &s }
