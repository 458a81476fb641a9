package cart

import (
	"testing"

	"github.com/fairyhunter13/shopping-cart/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreReconcilesAgainstCatalog(t *testing.T) {
	c := newCatalog(t)
	ct, dropped := Restore(c, []model.LineRecord{
		{ProductID: "P001", Quantity: 2},
		{ProductID: "GONE", Quantity: 1},
		{ProductID: "D001", Quantity: 0},
		{ProductID: "P001", Quantity: 1},
		{ProductID: "P002", Quantity: 4},
	})

	assert.Equal(t, []model.LineRecord{
		{ProductID: "P001", Quantity: 3},
		{ProductID: "P002", Quantity: 4},
	}, ct.Records())
	require.Len(t, dropped, 2)
	assert.Equal(t, "GONE", dropped[0].Record.ProductID)
	assert.Equal(t, "D001", dropped[1].Record.ProductID)

	// restored reservations were already taken out of the persisted stock
	assert.Equal(t, 10, stock(t, c, "P001"))
}

func TestRestoredLinesReleaseOnRemoval(t *testing.T) {
	c := newCatalog(t)
	ct, _ := Restore(c, []model.LineRecord{{ProductID: "P003", Quantity: 5}})

	require.NoError(t, ct.RemoveItem("P003"))
	assert.Equal(t, 30, stock(t, c, "P003"))
}

func TestReclaimReservesAgainstFreshStock(t *testing.T) {
	c := newCatalog(t)
	ct, dropped := Reclaim(c, []model.LineRecord{
		{ProductID: "P001", Quantity: 8},
		{ProductID: "P001", Quantity: 4},
		{ProductID: "P009", Quantity: 5},
		{ProductID: "GONE", Quantity: 1},
	})

	assert.Equal(t, []model.LineRecord{
		{ProductID: "P001", Quantity: 10},
		{ProductID: "P009", Quantity: 5},
	}, ct.Records())
	assert.Equal(t, 0, stock(t, c, "P001"))
	assert.Equal(t, 7, stock(t, c, "P009"))

	require.Len(t, dropped, 2)
	assert.Equal(t, model.LineRecord{ProductID: "P001", Quantity: 2}, dropped[0].Record)
	assert.Equal(t, "insufficient stock", dropped[0].Reason)
	assert.Equal(t, "GONE", dropped[1].Record.ProductID)

	require.ErrorIs(t, ct.AddOrIncrease("P001", 1), model.ErrInsufficientStock)
}

func TestReclaimDropsLineWithNoStockLeft(t *testing.T) {
	c := newCatalog(t)
	ct, dropped := Reclaim(c, []model.LineRecord{
		{ProductID: "P009", Quantity: 12},
		{ProductID: "P009", Quantity: 3},
	})

	assert.Equal(t, 12, ct.Reserved("P009"))
	assert.Equal(t, 0, stock(t, c, "P009"))
	require.Len(t, dropped, 1)
	assert.Equal(t, model.LineRecord{ProductID: "P009", Quantity: 3}, dropped[0].Record)
}
