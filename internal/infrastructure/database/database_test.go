package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/config"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/sangkips/licorera-api/pkg/logger"
	"github.com/sangkips/licorera-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: "file:seed_" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	db, err := Open(cfg, logger.Nop(), false)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{Driver: "mongo"}, logger.Nop(), false)
	assert.Error(t, err)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	cfg := config.AdminConfig{Name: "Admin", Email: "Admin@Licorera.local", Password: "pw"}

	created, err := SeedAdmin(ctx, db, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(ctx, db, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	var user entity.User
	require.NoError(t, db.First(&user, "email = ?", "admin@licorera.local").Error)
	assert.True(t, utils.CheckPassword(user.Password, "pw"))
}

func TestSeedAdminNeedsPassword(t *testing.T) {
	_, err := SeedAdmin(context.Background(), newTestDB(t), config.AdminConfig{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrAdminPasswordMissing)
}

func TestSeedSampleCatalogReplacesCatalogue(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	stale := entity.Category{Name: "Old"}
	require.NoError(t, db.Create(&stale).Error)

	cats, prods, err := SeedSampleCatalog(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 5, cats)
	assert.Equal(t, 5, prods)

	// running it twice leaves the same five of each
	_, _, err = SeedSampleCatalog(ctx, db)
	require.NoError(t, err)

	var categories []entity.Category
	require.NoError(t, db.Unscoped().Find(&categories).Error)
	assert.Len(t, categories, 5)

	descriptions := map[string]string{}
	for _, c := range categories {
		require.NotNil(t, c.Description)
		descriptions[c.Name] = *c.Description
	}
	assert.Equal(t, map[string]string{
		"Whiskey": "Various types of whiskey",
		"Vodka":   "Premium and standard vodkas",
		"Rum":     "White, dark, and spiced rums",
		"Gin":     "London dry and flavored gins",
		"Tequila": "Blanco, reposado, and añejo tequilas",
	}, descriptions)

	var jack entity.Product
	require.NoError(t, db.First(&jack, "name = ?", "Jack Daniel's").Error)
	assert.Equal(t, "Whiskey", jack.CategoryName)
	assert.Equal(t, 10, jack.Quantity)
	assert.Equal(t, "29.99", jack.Price.StringFixed(2))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "licorera.db?_foreign_keys=on", sqliteDSN("licorera.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", sqliteDSN("file:x?mode=memory"))
}
