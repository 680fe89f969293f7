package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfood/backend/internal/domain/shared"
)

func newTestStock(t *testing.T, quantity int64) *WarehouseStock {
	t.Helper()
	stock, err := NewWarehouseStock(uuid.New(), uuid.New(), "UND")
	require.NoError(t, err)
	stock.Quantity = quantity
	return stock
}

func TestNewWarehouseStock(t *testing.T) {
	t.Run("creates empty counter", func(t *testing.T) {
		stock, err := NewWarehouseStock(uuid.New(), uuid.New(), "")

		require.NoError(t, err)
		assert.Zero(t, stock.Quantity)
		assert.Equal(t, "UND", stock.Unit)
		assert.False(t, stock.StockTakenAt.IsZero())
	})

	t.Run("rejects nil warehouse", func(t *testing.T) {
		_, err := NewWarehouseStock(uuid.Nil, uuid.New(), "UND")
		require.Error(t, err)
	})
}

func TestWarehouseStock_Increase(t *testing.T) {
	stock := newTestStock(t, 10)
	before := stock.StockTakenAt

	require.NoError(t, stock.Increase(5))

	assert.Equal(t, int64(15), stock.Quantity)
	assert.False(t, stock.StockTakenAt.Before(before))

	require.Error(t, stock.Increase(0))
	require.Error(t, stock.Increase(-3))
}

func TestWarehouseStock_Decrease(t *testing.T) {
	t.Run("decreases within balance", func(t *testing.T) {
		stock := newTestStock(t, 10)

		require.NoError(t, stock.Decrease(4))

		assert.Equal(t, int64(6), stock.Quantity)
	})

	t.Run("never goes negative", func(t *testing.T) {
		stock := newTestStock(t, 3)

		err := stock.Decrease(4)

		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(3), stock.Quantity)
	})
}

func TestWarehouseStock_SetQuantity(t *testing.T) {
	stock := newTestStock(t, 10)

	require.NoError(t, stock.SetQuantity(42))
	assert.Equal(t, int64(42), stock.Quantity)

	require.Error(t, stock.SetQuantity(-1))
	assert.Equal(t, int64(42), stock.Quantity)
}

func TestWarehouseStock_CanFulfill(t *testing.T) {
	stock := newTestStock(t, 10)

	assert.True(t, stock.CanFulfill(10))
	assert.True(t, stock.CanFulfill(1))
	assert.False(t, stock.CanFulfill(11))
}
