package repository

import (
	"github.com/sangkips/licorera-api/pkg/pagination"
	"gorm.io/gorm"
)

// FieldEquals returns a GORM scope matching rows whose column equals value
// exactly. It backs the lookups by name and by category reference.
func FieldEquals(column string, value any) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(db.Statement.Quote(column)+" = ?", value)
	}
}

// Paginate returns a GORM scope applying limit and offset from params.
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			return db
		}
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage)
	}
}
