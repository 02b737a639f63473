package cart

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name, price, category string) *entity.Product {
	return &entity.Product{
		ID:           uuid.New(),
		Name:         name,
		Price:        decimal.RequireFromString(price),
		Quantity:     10,
		CategoryName: category,
	}
}

func TestAddSameProductTwiceIncrementsQuantity(t *testing.T) {
	c := New()
	jack := product("Jack Daniel's", "29.99", "Whiskey")

	assert.Equal(t, StateEmpty, c.State())
	c.Add(jack)
	c.Add(jack)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, StateBuilding, c.State())
	assert.True(t, decimal.RequireFromString("59.98").Equal(c.Total()))
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	a := product("Absolut Vodka", "24.99", "Vodka")
	b := product("Bacardi Superior", "19.99", "Rum")
	c.Add(a)
	c.Add(b)
	c.Add(a)

	require.Len(t, c.Lines, 2)
	assert.Equal(t, a.ID, c.Lines[0].ProductID)
	assert.Equal(t, b.ID, c.Lines[1].ProductID)
	assert.Equal(t, 3, c.ItemCount())
}

func TestSetQuantityBelowOneRemovesLine(t *testing.T) {
	c := New()
	gin := product("Bombay Sapphire", "27.99", "Gin")
	c.Add(gin)

	require.NoError(t, c.SetQuantity(gin.ID, 0))
	assert.Empty(t, c.Lines)
	assert.Equal(t, StateEmpty, c.State())
}

func TestSetQuantityUnknownProduct(t *testing.T) {
	c := New()
	err := c.SetQuantity(uuid.New(), 3)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestPriceIsCapturedAtAddTime(t *testing.T) {
	c := New()
	p := product("Patrón Silver", "49.99", "Tequila")
	c.Add(p)

	p.Price = decimal.RequireFromString("99.99")
	c.Add(p)

	assert.True(t, decimal.RequireFromString("99.98").Equal(c.Total()))
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := New().Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCustomer))
	assert.True(t, errors.Is(err, ErrEmpty))

	c := New()
	c.SetCustomer("   ")
	c.Add(product("Jack Daniel's", "29.99", "Whiskey"))
	err = c.Validate()
	assert.ErrorIs(t, err, ErrMissingCustomer)
	assert.NotErrorIs(t, err, ErrEmpty)
}

func TestFinalizeBuildsReceipt(t *testing.T) {
	loc := time.FixedZone("store", -5*3600)
	now := time.Date(2024, 3, 9, 22, 30, 0, 0, loc)

	c := New()
	c.SetCustomer("  Maria  ")
	jack := product("Jack Daniel's", "29.99", "Whiskey")
	rum := product("Bacardi Superior", "19.99", "Rum")
	c.Add(jack)
	c.Add(rum)
	c.Add(jack)

	receipt, err := c.Finalize(now)
	require.NoError(t, err)

	assert.Equal(t, "Maria", receipt.CustomerName)
	assert.Equal(t, "2024-03-09", receipt.Date)
	assert.Equal(t, now, receipt.Timestamp)
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, 0, receipt.Items[0].Position)
	assert.Equal(t, "Whiskey", receipt.Items[0].CategoryName)
	assert.Equal(t, 2, receipt.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("79.97").Equal(receipt.Total))

	// the cart is only cleared by the caller after the receipt is stored
	assert.Len(t, c.Lines, 2)
	c.Reset()
	assert.Equal(t, StateEmpty, c.State())
	assert.Empty(t, c.CustomerName)
}

func TestFinalizeRefusesIncompleteCart(t *testing.T) {
	c := New()
	c.Add(product("Jack Daniel's", "29.99", "Whiskey"))

	receipt, err := c.Finalize(time.Now())
	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, ErrMissingCustomer)
}

func TestCartSurvivesJSONRoundTrip(t *testing.T) {
	c := New()
	c.SetCustomer("Ana")
	c.Add(product("Absolut Vodka", "24.99", "Vodka"))

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var restored Cart
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Equal(t, c.CustomerName, restored.CustomerName)
	require.Len(t, restored.Lines, 1)
	assert.True(t, c.Total().Equal(restored.Total()))
}
