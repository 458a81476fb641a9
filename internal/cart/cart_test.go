package cart

import (
	"math/rand"
	"testing"

	"github.com/fairyhunter13/shopping-cart/internal/catalog"
	"github.com/fairyhunter13/shopping-cart/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.FromRecords(catalog.DefaultRecords())
	require.NoError(t, err)
	return c
}

func stock(t *testing.T, c *catalog.Catalog, id string) int {
	t.Helper()
	p, ok := c.Lookup(id)
	require.True(t, ok, id)
	return p.Available()
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReservationScenario(t *testing.T) {
	c := newCatalog(t)
	ct := New(c)

	require.NoError(t, ct.AddOrIncrease("P001", 3))
	assert.Equal(t, 7, stock(t, c, "P001"))
	assert.True(t, dec("4797.00").Equal(ct.Total()), ct.Total().String())

	err := ct.AddOrIncrease("P001", 8)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Equal(t, 7, stock(t, c, "P001"))
	assert.Equal(t, 3, ct.Reserved("P001"))

	require.NoError(t, ct.UpdateQuantity("P001", 5))
	assert.Equal(t, 5, stock(t, c, "P001"))
	assert.True(t, dec("7995.00").Equal(ct.Total()), ct.Total().String())

	require.NoError(t, ct.RemoveItem("P001"))
	assert.Equal(t, 10, stock(t, c, "P001"))
	assert.Zero(t, ct.Len())
	assert.True(t, ct.Total().IsZero())
}

func TestAddOrIncreaseRejections(t *testing.T) {
	c := newCatalog(t)
	ct := New(c)

	assert.ErrorIs(t, ct.AddOrIncrease("P001", 0), model.ErrInvalidQuantity)
	assert.ErrorIs(t, ct.AddOrIncrease("P001", -2), model.ErrInvalidQuantity)
	assert.ErrorIs(t, ct.AddOrIncrease("NOPE", 1), model.ErrUnknownProduct)
	assert.ErrorIs(t, ct.AddOrIncrease("P009", 13), model.ErrInsufficientStock)

	assert.Zero(t, ct.Len())
	assert.Equal(t, 10, stock(t, c, "P001"))
	assert.Equal(t, 12, stock(t, c, "P009"))
}

func TestAddOrIncreaseMergesIntoExistingLine(t *testing.T) {
	c := newCatalog(t)
	ct := New(c)

	require.NoError(t, ct.AddOrIncrease("P003", 2))
	require.NoError(t, ct.AddOrIncrease("P003", 4))

	require.Equal(t, 1, ct.Len())
	assert.Equal(t, 6, ct.Reserved("P003"))
	assert.Equal(t, 19, stock(t, c, "P003"))
}

func TestUpdateQuantity(t *testing.T) {
	c := newCatalog(t)
	ct := New(c)
	require.NoError(t, ct.AddOrIncrease("P004", 5))

	t.Run("unknown line", func(t *testing.T) {
		assert.ErrorIs(t, ct.UpdateQuantity("P005", 1), model.ErrNotInCart)
	})
	t.Run("negative", func(t *testing.T) {
		assert.ErrorIs(t, ct.UpdateQuantity("P004", -1), model.ErrInvalidQuantity)
		assert.Equal(t, 5, ct.Reserved("P004"))
	})
	t.Run("increase beyond stock", func(t *testing.T) {
		assert.ErrorIs(t, ct.UpdateQuantity("P004", 21), model.ErrInsufficientStock)
		assert.Equal(t, 5, ct.Reserved("P004"))
		assert.Equal(t, 15, stock(t, c, "P004"))
	})
	t.Run("increase to exact stock", func(t *testing.T) {
		require.NoError(t, ct.UpdateQuantity("P004", 20))
		assert.Equal(t, 0, stock(t, c, "P004"))
	})
	t.Run("decrease", func(t *testing.T) {
		require.NoError(t, ct.UpdateQuantity("P004", 2))
		assert.Equal(t, 18, stock(t, c, "P004"))
	})
	t.Run("same quantity", func(t *testing.T) {
		require.NoError(t, ct.UpdateQuantity("P004", 2))
		assert.Equal(t, 18, stock(t, c, "P004"))
	})
	t.Run("zero removes line", func(t *testing.T) {
		require.NoError(t, ct.UpdateQuantity("P004", 0))
		_, ok := ct.lines["P004"]
		assert.False(t, ok)
		assert.Equal(t, 20, stock(t, c, "P004"))
	})
}

func TestRemoveItem(t *testing.T) {
	c := newCatalog(t)
	ct := New(c)

	assert.ErrorIs(t, ct.RemoveItem("P001"), model.ErrNotInCart)

	require.NoError(t, ct.AddOrIncrease("D001", 10))
	require.NoError(t, ct.RemoveItem("D001"))
	assert.Equal(t, 100, stock(t, c, "D001"))
	assert.ErrorIs(t, ct.RemoveItem("D001"), model.ErrNotInCart)
}

func TestRemoveThenAddRoundTrip(t *testing.T) {
	c := newCatalog(t)
	ct := New(c)
	require.NoError(t, ct.AddOrIncrease("P002", 4))
	before := ct.Records()
	beforeStock := stock(t, c, "P002")

	require.NoError(t, ct.RemoveItem("P002"))
	require.NoError(t, ct.AddOrIncrease("P002", 4))

	assert.Equal(t, before, ct.Records())
	assert.Equal(t, beforeStock, stock(t, c, "P002"))
}

func TestTotalSumsSubtotals(t *testing.T) {
	c := newCatalog(t)
	ct := New(c)
	assert.True(t, ct.Total().IsZero())

	require.NoError(t, ct.AddOrIncrease("P010", 3))
	require.NoError(t, ct.AddOrIncrease("D003", 2))

	assert.True(t, dec("945").Equal(ct.Total()), ct.Total().String())
}

func TestLinesKeepInsertionOrder(t *testing.T) {
	ct := New(newCatalog(t))
	for _, id := range []string{"P005", "D002", "P001"} {
		require.NoError(t, ct.AddOrIncrease(id, 1))
	}
	require.NoError(t, ct.RemoveItem("D002"))
	require.NoError(t, ct.AddOrIncrease("D002", 1))

	assert.Equal(t, []model.LineRecord{
		{ProductID: "P005", Quantity: 1},
		{ProductID: "P001", Quantity: 1},
		{ProductID: "D002", Quantity: 1},
	}, ct.Records())
}

// Random operation sequences must never break available + reserved == initial.
func TestStockIsConserved(t *testing.T) {
	c := newCatalog(t)
	initial := map[string]int{}
	var ids []string
	for _, p := range c.List() {
		initial[p.ID] = p.Available()
		ids = append(ids, p.ID)
	}
	ids = append(ids, "UNKNOWN")

	ct := New(c)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		id := ids[rng.Intn(len(ids))]
		qty := rng.Intn(30) - 5
		switch rng.Intn(3) {
		case 0:
			_ = ct.AddOrIncrease(id, qty)
		case 1:
			_ = ct.UpdateQuantity(id, qty)
		case 2:
			_ = ct.RemoveItem(id)
		}

		for _, p := range c.List() {
			require.GreaterOrEqual(t, p.Available(), 0)
			require.Equal(t, initial[p.ID], p.Available()+ct.Reserved(p.ID), "step %d product %s", i, p.ID)
		}
		for _, l := range ct.Lines() {
			require.Positive(t, l.Quantity)
		}
	}
}
