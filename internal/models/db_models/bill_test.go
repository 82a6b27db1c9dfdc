package db_models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestIsValidBillStatus(t *testing.T) {
	assert.True(t, IsValidBillStatus(BillStatusPending))
	assert.True(t, IsValidBillStatus(BillStatusCompleted))
	assert.False(t, IsValidBillStatus("draft"))
	assert.False(t, IsValidBillStatus(""))
}

func TestBillItemLineTotal(t *testing.T) {
	item := BillItem{Price: decimal.RequireFromString("12.50"), Quantity: 3}
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("37.50")))
}

func TestBillItemsRoundTrip(t *testing.T) {
	b := &Bill{}
	require.NoError(t, b.SetItems([]BillItem{
		{Name: "Notebook", Price: decimal.NewFromInt(50), Quantity: 2},
		{Name: "Repair charge", Price: decimal.RequireFromString("99.99"), Quantity: 1, IsCustom: true},
	}))

	items, err := b.ItemList()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Notebook", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[1].IsCustom)
	assert.True(t, items[1].Price.Equal(decimal.RequireFromString("99.99")))

	assert.Equal(t, 2, b.ItemsCount())
}

func TestBillItemListEmpty(t *testing.T) {
	b := &Bill{}
	items, err := b.ItemList()
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Zero(t, b.ItemsCount())
}

func TestBillItemsCountUnreadable(t *testing.T) {
	b := &Bill{Items: datatypes.JSON(`{not json`)}
	assert.Zero(t, b.ItemsCount())

	_, err := b.ItemList()
	assert.Error(t, err)
}
