package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis/pennyflow/internal/model"
	"github.com/hollis/pennyflow/internal/storage"
	"github.com/hollis/pennyflow/internal/testutil"
)

func seedTransactions(t *testing.T, store *storage.SQLiteStorage, txns []model.Transaction) {
	t.Helper()
	_, err := store.SaveTransactions(context.Background(), txns)
	require.NoError(t, err)
}

func txnAt(userID string, date time.Time, description string, amount float64, direction model.Direction, categoryID *int64) model.Transaction {
	return model.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Direction:   direction,
		CategoryID:  categoryID,
	}
}

func TestCategoryBreakdown(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	user := testutil.SeedUser(t, store, "alice@example.com")
	gen := NewGenerator(store)

	food, err := store.UpsertCategory(ctx, user.ID, "Food & Dining", "utensils")
	require.NoError(t, err)
	travel, err := store.UpsertCategory(ctx, user.ID, "Travel", "plane")
	require.NoError(t, err)

	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedTransactions(t, store, []model.Transaction{
		txnAt(user.ID, march, "GROCERY A", -60, model.DirectionDebit, &food.ID),
		txnAt(user.ID, march, "GROCERY B", -30, model.DirectionDebit, &food.ID),
		txnAt(user.ID, march, "FLIGHT", -10, model.DirectionDebit, &travel.ID),
		txnAt(user.ID, march, "SALARY", 2000, model.DirectionCredit, nil),
		// outside the month, must not count
		txnAt(user.ID, march.AddDate(0, 1, 0), "APRIL GROCERY", -99, model.DirectionDebit, &food.ID),
	})

	breakdown, err := gen.CategoryBreakdown(ctx, user.ID, "2026-03")
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	assert.Equal(t, "Food & Dining", breakdown[0].CategoryName)
	assert.True(t, breakdown[0].Amount.Equal(decimal.NewFromInt(90)), "got %s", breakdown[0].Amount)
	assert.InDelta(t, 90.0, breakdown[0].Percent, 1e-6)

	assert.Equal(t, "Travel", breakdown[1].CategoryName)
	assert.InDelta(t, 10.0, breakdown[1].Percent, 1e-6)
}

func TestMonthlyTrend(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	user := testutil.SeedUser(t, store, "alice@example.com")
	gen := NewGenerator(store)

	jan := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	seedTransactions(t, store, []model.Transaction{
		txnAt(user.ID, jan, "SALARY JAN", 3000, model.DirectionCredit, nil),
		txnAt(user.ID, jan, "RENT JAN", -1200, model.DirectionDebit, nil),
		txnAt(user.ID, feb, "SALARY FEB", 3000, model.DirectionCredit, nil),
		txnAt(user.ID, feb, "RENT FEB", -1200, model.DirectionDebit, nil),
		txnAt(user.ID, feb, "GROCERIES FEB", -300, model.DirectionDebit, nil),
	})

	trend, err := gen.MonthlyTrend(ctx, user.ID, "2026-02", 3)
	require.NoError(t, err)
	require.Len(t, trend, 3)

	assert.Equal(t, "2025-12", trend[0].Month)
	assert.True(t, trend[0].Income.IsZero())
	assert.True(t, trend[0].Expenses.IsZero())

	assert.Equal(t, "2026-01", trend[1].Month)
	assert.True(t, trend[1].Net.Equal(decimal.NewFromInt(1800)), "got %s", trend[1].Net)

	assert.Equal(t, "2026-02", trend[2].Month)
	assert.True(t, trend[2].Expenses.Equal(decimal.NewFromInt(1500)), "got %s", trend[2].Expenses)
	assert.True(t, trend[2].Net.Equal(decimal.NewFromInt(1500)), "got %s", trend[2].Net)
}

func TestBudgetProgress(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	user := testutil.SeedUser(t, store, "alice@example.com")
	gen := NewGenerator(store)

	food, err := store.UpsertCategory(ctx, user.ID, "Food & Dining", "utensils")
	require.NoError(t, err)

	require.NoError(t, store.UpsertBudget(ctx, &model.Budget{
		UserID:     user.ID,
		CategoryID: food.ID,
		Month:      "2026-03",
		Amount:     decimal.NewFromInt(400),
	}))

	march := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	seedTransactions(t, store, []model.Transaction{
		txnAt(user.ID, march, "GROCERY", -150, model.DirectionDebit, &food.ID),
		txnAt(user.ID, march, "RESTAURANT", -150, model.DirectionDebit, &food.ID),
	})

	statuses, err := gen.BudgetProgress(ctx, user.ID, "2026-03")
	require.NoError(t, err)
	require.Len(t, statuses, 1)

	status := statuses[0]
	assert.Equal(t, "Food & Dining", status.CategoryName)
	assert.True(t, status.Spent.Equal(decimal.NewFromInt(300)), "got %s", status.Spent)
	assert.True(t, status.Remaining.Equal(decimal.NewFromInt(100)), "got %s", status.Remaining)
	assert.InDelta(t, 75.0, status.Percent, 1e-6)
	assert.False(t, status.Exceeded)

	t.Run("exceeding the limit flags the budget", func(t *testing.T) {
		seedTransactions(t, store, []model.Transaction{
			txnAt(user.ID, march.AddDate(0, 0, 1), "BIG DINNER", -200, model.DirectionDebit, &food.ID),
		})

		statuses, err := gen.BudgetProgress(ctx, user.ID, "2026-03")
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.True(t, statuses[0].Exceeded)
		assert.True(t, statuses[0].Remaining.IsNegative())
	})

	t.Run("month without budgets reports nothing", func(t *testing.T) {
		statuses, err := gen.BudgetProgress(ctx, user.ID, "2026-04")
		require.NoError(t, err)
		assert.Empty(t, statuses)
	})
}

func TestNetWorth(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	user := testutil.SeedUser(t, store, "alice@example.com")
	gen := NewGenerator(store)

	require.NoError(t, store.CreateAccount(ctx, &model.Account{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Name:    "Checking",
		Type:    model.AccountTypeChecking,
		Balance: decimal.NewFromInt(5000),
	}))
	require.NoError(t, store.CreateHolding(ctx, &model.Holding{
		UserID: user.ID,
		Name:   "Car",
		Kind:   model.HoldingAsset,
		Value:  decimal.NewFromInt(12000),
	}))
	require.NoError(t, store.CreateHolding(ctx, &model.Holding{
		UserID: user.ID,
		Name:   "Car loan",
		Kind:   model.HoldingLiability,
		Value:  decimal.NewFromInt(8000),
	}))

	summary, err := gen.NetWorth(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, summary.NetWorth.Equal(decimal.NewFromInt(9000)), "got %s", summary.NetWorth)
}

func TestGenerateOverview(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	user := testutil.SeedUser(t, store, "alice@example.com")
	gen := NewGenerator(store)

	overview, err := gen.GenerateOverview(ctx, user.ID, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", overview.Month)
	assert.Len(t, overview.Trend, 6)
	assert.Empty(t, overview.Breakdown)
}
