package engine

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
	"github.com/hollis/pennyflow/internal/rules"
	"github.com/hollis/pennyflow/internal/storage"
	"github.com/hollis/pennyflow/internal/testutil"
)

func newTestEngine(t *testing.T) (*Engine, *storage.SQLiteStorage) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	return New(store, rules.NewClassifier(rules.DefaultRules())), store
}

func saveTransaction(t *testing.T, store *storage.SQLiteStorage, userID, description string, amount float64, direction model.Direction) model.Transaction {
	t.Helper()
	txn := model.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Date:        time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      decimal.NewFromFloat(amount),
		Direction:   direction,
	}
	_, err := store.SaveTransactions(context.Background(), []model.Transaction{txn})
	require.NoError(t, err)
	return txn
}

func TestEnsureDefaultCategories(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t)
	user := testutil.SeedUser(t, store, "alice@example.com")

	first, err := eng.EnsureDefaultCategories(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, first, len(rules.DefaultRules()))

	t.Run("second call yields the same persisted ids", func(t *testing.T) {
		second, err := eng.EnsureDefaultCategories(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, second, len(first))
		for ruleID, cat := range first {
			assert.Equal(t, cat.ID, second[ruleID].ID, "rule %q", ruleID)
		}
	})

	t.Run("no duplicate rows are created", func(t *testing.T) {
		cats, err := store.GetCategories(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, cats, len(rules.DefaultRules()))
	})

	t.Run("fallback category is materialized", func(t *testing.T) {
		cat, ok := first[rules.FallbackRuleID]
		require.True(t, ok)
		assert.Equal(t, "Other", cat.Name)
	})

	t.Run("empty user is unauthorized", func(t *testing.T) {
		_, err := eng.EnsureDefaultCategories(ctx, "")
		assert.True(t, errors.Is(err, common.ErrUnauthorized))
	})
}

func TestSuggestForTransaction(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t)
	user := testutil.SeedUser(t, store, "alice@example.com")

	t.Run("debit with keyword resolves to a persisted category", func(t *testing.T) {
		txn := saveTransaction(t, store, user.ID, "CORNER CAFE 0421", -4.50, model.DirectionDebit)

		suggestion, cat, err := eng.SuggestForTransaction(ctx, user.ID, txn.ID)
		require.NoError(t, err)
		require.NotNil(t, suggestion)
		require.NotNil(t, cat)
		assert.Equal(t, "food", suggestion.RuleID)
		assert.Equal(t, "Food & Dining", cat.Name)
	})

	t.Run("credit resolves to income regardless of text", func(t *testing.T) {
		txn := saveTransaction(t, store, user.ID, "random text", 100, model.DirectionCredit)

		suggestion, cat, err := eng.SuggestForTransaction(ctx, user.ID, txn.ID)
		require.NoError(t, err)
		require.NotNil(t, suggestion)
		assert.Equal(t, "income", suggestion.RuleID)
		assert.InDelta(t, 0.9, suggestion.Confidence, 1e-9)
		assert.True(t, suggestion.AutoApprove)
		assert.Equal(t, "Income", cat.Name)
	})

	t.Run("no match returns nil suggestion without error", func(t *testing.T) {
		txn := saveTransaction(t, store, user.ID, "zzqx 9912", -3, model.DirectionDebit)

		suggestion, cat, err := eng.SuggestForTransaction(ctx, user.ID, txn.ID)
		require.NoError(t, err)
		assert.Nil(t, suggestion)
		assert.Nil(t, cat)
	})

	t.Run("unknown transaction is not found", func(t *testing.T) {
		_, _, err := eng.SuggestForTransaction(ctx, user.ID, uuid.NewString())
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})
}

func TestAssignSuggestion(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t)
	alice := testutil.SeedUser(t, store, "alice@example.com")
	bob := testutil.SeedUser(t, store, "bob@example.com")

	mapping, err := eng.EnsureDefaultCategories(ctx, alice.ID)
	require.NoError(t, err)
	foodID := mapping["food"].ID

	t.Run("from unclassified to suggested", func(t *testing.T) {
		txn := saveTransaction(t, store, alice.ID, "SOMETHING", -10, model.DirectionDebit)

		require.NoError(t, eng.AssignSuggestion(ctx, alice.ID, txn.ID, foodID))

		got, err := store.GetTransactionByID(ctx, alice.ID, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusSuggested, got.Status())
	})

	t.Run("re-suggesting while suggested is allowed", func(t *testing.T) {
		txn := saveTransaction(t, store, alice.ID, "SOMETHING ELSE", -10, model.DirectionDebit)
		require.NoError(t, eng.AssignSuggestion(ctx, alice.ID, txn.ID, foodID))

		otherID := mapping["travel"].ID
		require.NoError(t, eng.AssignSuggestion(ctx, alice.ID, txn.ID, otherID))

		got, err := store.GetTransactionByID(ctx, alice.ID, txn.ID)
		require.NoError(t, err)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, otherID, *got.CategoryID)
	})

	t.Run("cross-user category fails", func(t *testing.T) {
		txn := saveTransaction(t, store, bob.ID, "BOBS COFFEE", -5, model.DirectionDebit)

		err := eng.AssignSuggestion(ctx, bob.ID, txn.ID, foodID)
		assert.True(t, errors.Is(err, common.ErrNotFound))

		got, err := store.GetTransactionByID(ctx, bob.ID, txn.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
	})

	t.Run("validated transaction rejects new suggestions", func(t *testing.T) {
		txn := saveTransaction(t, store, alice.ID, "VALIDATED ONE", -10, model.DirectionDebit)
		require.NoError(t, eng.AssignSuggestion(ctx, alice.ID, txn.ID, foodID))
		require.NoError(t, eng.Confirm(ctx, alice.ID, txn.ID, true))

		err := eng.AssignSuggestion(ctx, alice.ID, txn.ID, foodID)
		assert.True(t, errors.Is(err, common.ErrInvalidState))
	})
}

func TestConfirm(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t)
	user := testutil.SeedUser(t, store, "alice@example.com")

	mapping, err := eng.EnsureDefaultCategories(ctx, user.ID)
	require.NoError(t, err)
	foodID := mapping["food"].ID

	t.Run("approval validates and keeps the category", func(t *testing.T) {
		txn := saveTransaction(t, store, user.ID, "GROCERY RUN", -30, model.DirectionDebit)
		require.NoError(t, eng.AssignSuggestion(ctx, user.ID, txn.ID, foodID))

		require.NoError(t, eng.Confirm(ctx, user.ID, txn.ID, true))

		got, err := store.GetTransactionByID(ctx, user.ID, txn.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusValidated, got.Status())
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, foodID, *got.CategoryID)
	})

	t.Run("rejection clears the category and is terminal", func(t *testing.T) {
		txn := saveTransaction(t, store, user.ID, "MISFILED", -30, model.DirectionDebit)
		require.NoError(t, eng.AssignSuggestion(ctx, user.ID, txn.ID, foodID))

		require.NoError(t, eng.Confirm(ctx, user.ID, txn.ID, false))

		got, err := store.GetTransactionByID(ctx, user.ID, txn.ID)
		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
		assert.True(t, got.CategoryValidated)
		assert.Equal(t, model.StatusRejected, got.Status())

		// A second confirm on the now-rejected transaction must fail.
		err = eng.Confirm(ctx, user.ID, txn.ID, false)
		assert.True(t, errors.Is(err, common.ErrInvalidState))
	})

	t.Run("confirming an unclassified transaction fails", func(t *testing.T) {
		txn := saveTransaction(t, store, user.ID, "NEVER SUGGESTED", -10, model.DirectionDebit)
		err := eng.Confirm(ctx, user.ID, txn.ID, true)
		assert.True(t, errors.Is(err, common.ErrInvalidState))
	})
}

func TestClassifyBatch(t *testing.T) {
	ctx := context.Background()
	eng, store := newTestEngine(t)
	user := testutil.SeedUser(t, store, "alice@example.com")

	txns := []model.Transaction{
		{
			ID: uuid.NewString(), UserID: user.ID,
			Date:        time.Now().UTC(),
			Description: "STARBUCKS COFFEE",
			Amount:      decimal.NewFromFloat(-5.25),
			Direction:   model.DirectionDebit,
		},
		{
			ID: uuid.NewString(), UserID: user.ID,
			Date:        time.Now().UTC(),
			Description: "ACME CORP PAYROLL",
			Amount:      decimal.NewFromFloat(2500),
			Direction:   model.DirectionCredit,
		},
		{
			ID: uuid.NewString(), UserID: user.ID,
			Date:        time.Now().UTC(),
			Description: "zzqx 9912",
			Amount:      decimal.NewFromFloat(-1),
			Direction:   model.DirectionDebit,
		},
	}

	suggested, err := eng.ClassifyBatch(ctx, user.ID, txns)
	require.NoError(t, err)
	assert.Equal(t, 2, suggested)

	// Single-pattern coffee match stays pending review.
	assert.NotNil(t, txns[0].CategoryID)
	assert.False(t, txns[0].CategoryValidated)

	// Credit short-circuit auto-approves.
	assert.NotNil(t, txns[1].CategoryID)
	assert.True(t, txns[1].CategoryValidated)

	// Unmatched row untouched.
	assert.Nil(t, txns[2].CategoryID)
	assert.False(t, txns[2].CategoryValidated)
}
