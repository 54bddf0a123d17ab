// Package rules implements the keyword-based transaction categorization
// engine: a static rule table and a pure classifier that scores free-text
// descriptions against it.
package rules

import "github.com/hollis/pennyflow/internal/model"

// CategoryRule maps keyword evidence to a category. Rules are evaluated in
// declared order; the first rule with at least one matching pattern wins.
type CategoryRule struct {
	Direction *model.Direction
	ID        string
	Name      string
	Icon      string
	Patterns  []string // lowercase substrings
}

// FallbackRuleID names the reserved catch-all category. It carries no
// patterns, so the classifier never selects it; callers fall back to it
// when no suggestion is returned.
const FallbackRuleID = "other"

func directionPtr(d model.Direction) *model.Direction { return &d }

// DefaultRules returns the built-in rule table in priority order.
// Persisted categories are keyed by Name, never by slice index, so rules
// can be reordered or added without breaking existing data.
func DefaultRules() []CategoryRule {
	return []CategoryRule{
		{
			ID:        "income",
			Name:      "Income",
			Icon:      "banknote",
			Patterns:  []string{"salary", "payroll", "paycheck", "deposit", "dividend"},
			Direction: directionPtr(model.DirectionCredit),
		},
		{
			ID:       "food",
			Name:     "Food & Dining",
			Icon:     "utensils",
			Patterns: []string{"grocery", "supermarket", "restaurant", "cafe", "coffee", "pizza", "burger"},
		},
		{
			ID:       "housing",
			Name:     "Housing",
			Icon:     "home",
			Patterns: []string{"rent", "mortgage", "landlord", "hoa"},
		},
		{
			ID:       "utilities",
			Name:     "Utilities",
			Icon:     "plug",
			Patterns: []string{"electric", "water", "gas", "internet", "phone", "utility"},
		},
		{
			ID:       "transport",
			Name:     "Transportation",
			Icon:     "car",
			Patterns: []string{"uber", "lyft", "taxi", "fuel", "gasoline", "parking", "transit", "metro"},
		},
		{
			ID:       "shopping",
			Name:     "Shopping",
			Icon:     "shopping-bag",
			Patterns: []string{"amazon", "walmart", "target", "store", "mall"},
		},
		{
			ID:       "health",
			Name:     "Health",
			Icon:     "heart-pulse",
			Patterns: []string{"pharmacy", "doctor", "dental", "clinic", "hospital", "gym"},
		},
		{
			ID:       "entertainment",
			Name:     "Entertainment",
			Icon:     "clapperboard",
			Patterns: []string{"netflix", "spotify", "cinema", "theater", "steam", "concert"},
		},
		{
			ID:       "travel",
			Name:     "Travel",
			Icon:     "plane",
			Patterns: []string{"airline", "flight", "hotel", "airbnb", "booking"},
		},
		{
			ID:       "fees",
			Name:     "Fees & Charges",
			Icon:     "receipt",
			Patterns: []string{"fee", "interest charge", "overdraft", "penalty"},
		},
		{
			ID:   FallbackRuleID,
			Name: "Other",
			Icon: "circle-dot",
		},
	}
}
