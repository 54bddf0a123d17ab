// Package engine orchestrates categorization: it provisions the default
// categories for a user, runs the classifier over transactions, and applies
// the human review workflow to suggestions.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hollis/pennyflow/internal/common"
	"github.com/hollis/pennyflow/internal/model"
	"github.com/hollis/pennyflow/internal/rules"
	"github.com/hollis/pennyflow/internal/service"
)

// CategoryMapping resolves rule identifiers to persisted categories for one
// user. It is produced by EnsureDefaultCategories and passed explicitly to
// consumers; there are no ambient lookups.
type CategoryMapping map[string]model.Category

// Engine wires the classifier to storage.
type Engine struct {
	store      service.Storage
	classifier *rules.Classifier
}

// New creates an engine over the given storage and classifier.
func New(store service.Storage, classifier *rules.Classifier) *Engine {
	return &Engine{
		store:      store,
		classifier: classifier,
	}
}

// EnsureDefaultCategories materializes every rule into a persisted category
// for the user and returns the rule-to-category mapping. Safe to call
// repeatedly and concurrently; the storage upsert converges on one row per
// (user, name).
func (e *Engine) EnsureDefaultCategories(ctx context.Context, userID string) (CategoryMapping, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: no user", common.ErrUnauthorized)
	}

	ruleSet := e.classifier.Rules()
	mapping := make(CategoryMapping, len(ruleSet))

	for _, rule := range ruleSet {
		cat, err := e.store.UpsertCategory(ctx, userID, rule.Name, rule.Icon)
		if err != nil {
			return nil, fmt.Errorf("failed to provision category %q: %w", rule.Name, err)
		}
		mapping[rule.ID] = *cat
	}

	slog.Debug("provisioned default categories", "user_id", userID, "count", len(mapping))
	return mapping, nil
}

// SuggestForTransaction classifies a stored transaction and returns the
// suggestion alongside the persisted category it resolves to. A nil
// suggestion means no rule matched; the caller falls back to the catch-all
// category.
func (e *Engine) SuggestForTransaction(ctx context.Context, userID, transactionID string) (*rules.Suggestion, *model.Category, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("%w: no user", common.ErrUnauthorized)
	}

	txn, err := e.store.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, nil, err
	}

	suggestion := e.classifier.SuggestForTransaction(*txn)
	if suggestion == nil {
		return nil, nil, nil
	}

	mapping, err := e.EnsureDefaultCategories(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	cat, ok := mapping[suggestion.RuleID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: category for rule %q", common.ErrNotFound, suggestion.RuleID)
	}

	return suggestion, &cat, nil
}

// AssignSuggestion attaches an unvalidated category suggestion to a
// transaction. Valid only from the Unclassified or Suggested states, and
// only when the category belongs to the transaction's owner.
func (e *Engine) AssignSuggestion(ctx context.Context, userID, transactionID string, categoryID int64) error {
	if userID == "" {
		return fmt.Errorf("%w: no user", common.ErrUnauthorized)
	}

	txn, err := e.store.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	switch txn.Status() {
	case model.StatusUnclassified, model.StatusSuggested:
	default:
		return fmt.Errorf("%w: cannot suggest a category for a %s transaction",
			common.ErrInvalidState, txn.Status())
	}

	// Ownership check: the category lookup is scoped to the same user, so a
	// cross-user category comes back not found.
	if _, err := e.store.GetCategoryByID(ctx, userID, categoryID); err != nil {
		return err
	}

	return e.store.UpdateTransactionCategory(ctx, userID, transactionID, &categoryID, false)
}

// Confirm resolves a pending suggestion. Approval keeps the category and
// marks it validated; rejection clears the category and marks the
// transaction reviewed. Rejection is terminal: the transaction is not
// re-classified.
func (e *Engine) Confirm(ctx context.Context, userID, transactionID string, approved bool) error {
	if userID == "" {
		return fmt.Errorf("%w: no user", common.ErrUnauthorized)
	}

	txn, err := e.store.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	if txn.Status() != model.StatusSuggested {
		return fmt.Errorf("%w: cannot confirm a %s transaction",
			common.ErrInvalidState, txn.Status())
	}

	if approved {
		return e.store.UpdateTransactionCategory(ctx, userID, transactionID, txn.CategoryID, true)
	}
	return e.store.UpdateTransactionCategory(ctx, userID, transactionID, nil, true)
}

// ClassifyBatch runs the classifier over a slice of not-yet-saved
// transactions, attaching suggested categories in place. Auto-approved
// suggestions are applied as validated, mirroring a UI that applies strong
// matches silently. Returns how many transactions received a suggestion.
func (e *Engine) ClassifyBatch(ctx context.Context, userID string, transactions []model.Transaction) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: no user", common.ErrUnauthorized)
	}

	mapping, err := e.EnsureDefaultCategories(ctx, userID)
	if err != nil {
		return 0, err
	}

	suggested := 0
	for i := range transactions {
		suggestion := e.classifier.SuggestForTransaction(transactions[i])
		if suggestion == nil {
			continue
		}
		cat, ok := mapping[suggestion.RuleID]
		if !ok {
			continue
		}
		id := cat.ID
		transactions[i].CategoryID = &id
		transactions[i].CategoryValidated = suggestion.AutoApprove
		suggested++
	}

	slog.Info("classified transaction batch",
		"user_id", userID,
		"total", len(transactions),
		"suggested", suggested)
	return suggested, nil
}
