package rules

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/model"
)

// Suggestion is the classifier's verdict for a single transaction.
// Confidence is the fraction of the winning rule's patterns found in the
// description, so it is not comparable across rules with different
// pattern-set sizes.
type Suggestion struct {
	RuleID      string  `json:"rule_id"`
	Confidence  float64 `json:"confidence"`
	AutoApprove bool    `json:"auto_approve"`
}

// Classifier scores transaction descriptions against an ordered rule set.
// It is pure and safe for concurrent use; the rule slice is never mutated.
type Classifier struct {
	creditRule *CategoryRule
	rules      []CategoryRule
}

// NewClassifier creates a classifier for the given rules. The slice order
// is the match priority.
func NewClassifier(ruleSet []CategoryRule) *Classifier {
	c := &Classifier{rules: ruleSet}
	for i := range ruleSet {
		r := &ruleSet[i]
		if r.Direction != nil && *r.Direction == model.DirectionCredit {
			c.creditRule = r
			break
		}
	}
	return c
}

// Suggest returns the best-matching category for a description, or nil when
// no rule matches. Matching is case-insensitive substring search; the first
// rule in declared order with at least one hit wins, regardless of how many
// patterns later rules would match.
func (c *Classifier) Suggest(description string, _ decimal.Decimal, direction model.Direction) *Suggestion {
	// Every credit lands on the first credit-typed rule, whatever the text
	// says. TODO: match payroll-style deposits specifically instead of
	// short-circuiting all credits.
	if direction == model.DirectionCredit && c.creditRule != nil {
		return &Suggestion{
			RuleID:      c.creditRule.ID,
			Confidence:  0.9,
			AutoApprove: true,
		}
	}

	desc := strings.ToLower(description)

	for i := range c.rules {
		rule := &c.rules[i]
		if rule.Direction != nil && *rule.Direction != direction {
			continue
		}

		matched := 0
		for _, pattern := range rule.Patterns {
			if strings.Contains(desc, pattern) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		return &Suggestion{
			RuleID:      rule.ID,
			Confidence:  float64(matched) / float64(len(rule.Patterns)),
			AutoApprove: matched > 1,
		}
	}

	return nil
}

// SuggestForTransaction classifies a transaction by its description, amount
// and direction.
func (c *Classifier) SuggestForTransaction(txn model.Transaction) *Suggestion {
	return c.Suggest(txn.Description, txn.Amount, txn.Direction)
}

// Rules returns the rule set the classifier was built with.
func (c *Classifier) Rules() []CategoryRule {
	return c.rules
}
