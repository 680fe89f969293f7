package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(t *testing.T) *WarehouseTransaction {
	t.Helper()
	tx, err := NewWarehouseTransaction(uuid.New())
	require.NoError(t, err)
	return tx
}

func TestNewWarehouseTransaction(t *testing.T) {
	tx := newTestTransaction(t)

	assert.Equal(t, TransactionPending, tx.Status)
	assert.False(t, tx.IsTerminal())
	assert.Empty(t, tx.Lines)
}

func TestWarehouseTransaction_AddLine(t *testing.T) {
	t.Run("adds line while pending", func(t *testing.T) {
		tx := newTestTransaction(t)

		err := tx.AddLine(uuid.New(), uuid.New(), 7, 3, 10)

		require.NoError(t, err)
		require.Len(t, tx.Lines, 1)
		assert.Equal(t, int64(3), tx.Lines[0].StockBefore)
		assert.Equal(t, int64(10), tx.Lines[0].StockAfter)
	})

	t.Run("rejects lines once terminal", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.MarkExecuted())

		err := tx.AddLine(uuid.New(), uuid.New(), 7, 3, 10)

		require.Error(t, err)
	})

	t.Run("rejects negative balances", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.Error(t, tx.AddLine(uuid.New(), uuid.New(), 7, -1, 6))
	})
}

func TestWarehouseTransaction_StateMachine(t *testing.T) {
	t.Run("pending executes once", func(t *testing.T) {
		tx := newTestTransaction(t)

		require.NoError(t, tx.MarkExecuted())

		assert.Equal(t, TransactionExecuted, tx.Status)
		assert.True(t, tx.IsTerminal())
		require.NotNil(t, tx.ExecutedAt)

		require.Error(t, tx.MarkExecuted())
		require.Error(t, tx.MarkCancelled())
	})

	t.Run("pending cancels once", func(t *testing.T) {
		tx := newTestTransaction(t)

		require.NoError(t, tx.MarkCancelled())

		assert.Equal(t, TransactionCancelled, tx.Status)
		require.NotNil(t, tx.CancelledAt)

		require.Error(t, tx.MarkExecuted())
	})

	t.Run("executed transaction can be reverted", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.NoError(t, tx.MarkExecuted())

		require.NoError(t, tx.RevertExecution())

		assert.Equal(t, TransactionCancelled, tx.Status)
	})

	t.Run("pending transaction cannot be reverted", func(t *testing.T) {
		tx := newTestTransaction(t)
		require.Error(t, tx.RevertExecution())
	})
}
