package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollis/pennyflow/internal/model"
)

func testRules() []CategoryRule {
	return []CategoryRule{
		{
			ID:        "income",
			Name:      "Income",
			Patterns:  []string{"salary", "payroll"},
			Direction: directionPtr(model.DirectionCredit),
		},
		{
			ID:       "food",
			Name:     "Food & Dining",
			Patterns: []string{"grocery", "restaurant", "cafe"},
		},
		{
			ID:       "utilities",
			Name:     "Utilities",
			Patterns: []string{"electric", "gas", "water"},
		},
		{
			ID:   FallbackRuleID,
			Name: "Other",
		},
	}
}

func TestClassifier_Suggest(t *testing.T) {
	c := NewClassifier(testRules())
	amount := decimal.NewFromInt(50)

	tests := []struct {
		want        *Suggestion
		name        string
		description string
		direction   model.Direction
	}{
		{
			name:        "no keyword match returns nil",
			description: "zzqx 9912",
			direction:   model.DirectionDebit,
			want:        nil,
		},
		{
			name:        "empty description returns nil",
			description: "",
			direction:   model.DirectionDebit,
			want:        nil,
		},
		{
			name:        "single pattern match",
			description: "WHOLE FOODS GROCERY #123",
			direction:   model.DirectionDebit,
			want:        &Suggestion{RuleID: "food", Confidence: 1.0 / 3.0, AutoApprove: false},
		},
		{
			name:        "multiple patterns auto-approve",
			description: "grocery run then restaurant",
			direction:   model.DirectionDebit,
			want:        &Suggestion{RuleID: "food", Confidence: 2.0 / 3.0, AutoApprove: true},
		},
		{
			name:        "first rule wins over later rule with more matches",
			description: "grocery and electric gas bill",
			direction:   model.DirectionDebit,
			want:        &Suggestion{RuleID: "food", Confidence: 1.0 / 3.0, AutoApprove: false},
		},
		{
			name:        "matching is case-insensitive with no word boundaries",
			description: "LAS VEGAS WATER PARK",
			direction:   model.DirectionDebit,
			want:        &Suggestion{RuleID: "utilities", Confidence: 2.0 / 3.0, AutoApprove: true},
		},
		{
			name:        "credit short-circuits to income regardless of text",
			description: "random text",
			direction:   model.DirectionCredit,
			want:        &Suggestion{RuleID: "income", Confidence: 0.9, AutoApprove: true},
		},
		{
			name:        "credit with debit keywords still lands on income",
			description: "grocery restaurant cafe",
			direction:   model.DirectionCredit,
			want:        &Suggestion{RuleID: "income", Confidence: 0.9, AutoApprove: true},
		},
		{
			name:        "credit-only rule skipped for debits",
			description: "salary payroll",
			direction:   model.DirectionDebit,
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Suggest(tt.description, amount, tt.direction)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want.RuleID, got.RuleID)
			assert.InDelta(t, tt.want.Confidence, got.Confidence, 1e-9)
			assert.Equal(t, tt.want.AutoApprove, got.AutoApprove)
		})
	}
}

func TestClassifier_SuggestForTransaction(t *testing.T) {
	c := NewClassifier(testRules())

	txn := model.Transaction{
		Description: "TRADER JOES GROCERY",
		Amount:      decimal.NewFromFloat(-42.17),
		Direction:   model.DirectionDebit,
	}

	got := c.SuggestForTransaction(txn)
	require.NotNil(t, got)
	assert.Equal(t, "food", got.RuleID)

	// The stored description must never be mutated by matching.
	assert.Equal(t, "TRADER JOES GROCERY", txn.Description)
}

func TestClassifier_NoCreditRuleConfigured(t *testing.T) {
	c := NewClassifier([]CategoryRule{
		{ID: "food", Name: "Food", Patterns: []string{"grocery"}},
	})

	got := c.Suggest("random deposit", decimal.NewFromInt(100), model.DirectionCredit)
	assert.Nil(t, got)
}

func TestClassifier_FallbackRuleNeverMatches(t *testing.T) {
	c := NewClassifier(testRules())

	// The catch-all rule has no patterns, so even a description that matches
	// nothing else must not resolve to it.
	got := c.Suggest("completely unmatchable", decimal.NewFromInt(5), model.DirectionDebit)
	assert.Nil(t, got)
}

func TestClassifier_ConfidencePerRuleSize(t *testing.T) {
	c := NewClassifier([]CategoryRule{
		{ID: "one", Name: "One", Patterns: []string{"alpha"}},
		{ID: "three", Name: "Three", Patterns: []string{"beta", "gamma", "delta"}},
	})

	// A 1-of-1 match scores 1.0, indistinguishable from a full match on a
	// larger rule. Kept as-is; scores are only meaningful within one rule.
	got := c.Suggest("alpha", decimal.Zero, model.DirectionDebit)
	require.NotNil(t, got)
	assert.Equal(t, 1.0, got.Confidence)
	assert.False(t, got.AutoApprove)

	got = c.Suggest("beta and gamma", decimal.Zero, model.DirectionDebit)
	require.NotNil(t, got)
	assert.InDelta(t, 2.0/3.0, got.Confidence, 1e-9)
	assert.True(t, got.AutoApprove)
}
