package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis/pennyflow/internal/common"
	"github.com/hollis/pennyflow/internal/model"
	"github.com/hollis/pennyflow/internal/service"
)

func makeTransaction(userID, description string, amount float64, direction model.Direction, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Direction:   direction,
	}
}

func TestSaveTransactions(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	user := seedUser(t, store, "alice@example.com")
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("inserts and reports count", func(t *testing.T) {
		txns := []model.Transaction{
			makeTransaction(user.ID, "WHOLE FOODS", -42.00, model.DirectionDebit, date),
			makeTransaction(user.ID, "ACME PAYROLL", 2500.00, model.DirectionCredit, date),
		}
		inserted, err := store.SaveTransactions(ctx, txns)
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)
	})

	t.Run("identical rows are deduplicated by hash", func(t *testing.T) {
		dup := makeTransaction(user.ID, "WHOLE FOODS", -42.00, model.DirectionDebit, date)
		inserted, err := store.SaveTransactions(ctx, []model.Transaction{dup})
		require.NoError(t, err)
		assert.Equal(t, 0, inserted)
	})

	t.Run("new transaction starts unclassified", func(t *testing.T) {
		txns, err := store.GetTransactions(ctx, user.ID, service.TransactionFilter{})
		require.NoError(t, err)
		require.NotEmpty(t, txns)
		for _, txn := range txns {
			assert.Equal(t, model.StatusUnclassified, txn.Status())
		}
	})

	t.Run("rejects invalid direction", func(t *testing.T) {
		bad := makeTransaction(user.ID, "BAD", 1, "sideways", date)
		_, err := store.SaveTransactions(ctx, []model.Transaction{bad})
		assert.Error(t, err)
	})
}

func TestGetTransactions_Filter(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	user := seedUser(t, store, "alice@example.com")
	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	_, err := store.SaveTransactions(ctx, []model.Transaction{
		makeTransaction(user.ID, "JANUARY RENT", -1200, model.DirectionDebit, jan),
		makeTransaction(user.ID, "FEBRUARY RENT", -1200, model.DirectionDebit, feb),
		makeTransaction(user.ID, "SALARY", 3000, model.DirectionCredit, feb),
	})
	require.NoError(t, err)

	t.Run("date range", func(t *testing.T) {
		start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		txns, err := store.GetTransactions(ctx, user.ID, service.TransactionFilter{
			StartDate: &start,
			EndDate:   &end,
		})
		require.NoError(t, err)
		assert.Len(t, txns, 2)
	})

	t.Run("status filter", func(t *testing.T) {
		txns, err := store.GetTransactions(ctx, user.ID, service.TransactionFilter{
			Status: model.StatusUnclassified,
		})
		require.NoError(t, err)
		assert.Len(t, txns, 3)
	})

	t.Run("limit and offset", func(t *testing.T) {
		txns, err := store.GetTransactions(ctx, user.ID, service.TransactionFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, txns, 2)

		rest, err := store.GetTransactions(ctx, user.ID, service.TransactionFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		bob := seedUser(t, store, "bob@example.com")
		txns, err := store.GetTransactions(ctx, bob.ID, service.TransactionFilter{})
		require.NoError(t, err)
		assert.Empty(t, txns)
	})
}

func TestUpdateTransactionCategory(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	user := seedUser(t, store, "alice@example.com")
	cat, err := store.UpsertCategory(ctx, user.ID, "Food & Dining", "utensils")
	require.NoError(t, err)

	txn := makeTransaction(user.ID, "CAFE", -4.50, model.DirectionDebit, time.Now().UTC())
	_, err = store.SaveTransactions(ctx, []model.Transaction{txn})
	require.NoError(t, err)

	t.Run("set suggestion", func(t *testing.T) {
		require.NoError(t, store.UpdateTransactionCategory(ctx, user.ID, txn.ID, &cat.ID, false))
		got, err := store.GetTransactionByID(ctx, user.ID, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusSuggested, got.Status())
	})

	t.Run("clear and validate", func(t *testing.T) {
		require.NoError(t, store.UpdateTransactionCategory(ctx, user.ID, txn.ID, nil, true))
		got, err := store.GetTransactionByID(ctx, user.ID, txn.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
		assert.True(t, got.CategoryValidated)
		assert.Equal(t, model.StatusRejected, got.Status())
	})

	t.Run("unknown transaction", func(t *testing.T) {
		err := store.UpdateTransactionCategory(ctx, user.ID, uuid.NewString(), nil, true)
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})

	t.Run("amount round-trips exactly", func(t *testing.T) {
		got, err := store.GetTransactionByID(ctx, user.ID, txn.ID)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(decimal.NewFromFloat(-4.50)),
			"got %s", got.Amount)
	})
}
