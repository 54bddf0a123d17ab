// Package report computes dashboard aggregations. Everything here is a
// direct reduction over storage query results; the heavy lifting is the
// queries themselves.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/model"
	"github.com/hollis/pennyflow/internal/service"
)

// CategorySpend is one slice of the spending breakdown.
type CategorySpend struct {
	CategoryName string          `json:"category_name"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Percent      float64         `json:"percent"`
}

// MonthlySummary totals income and expenses for one calendar month.
type MonthlySummary struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// BudgetStatus compares spending in a month against the configured limit.
type BudgetStatus struct {
	CategoryName string          `json:"category_name"`
	Month        string          `json:"month"`
	CategoryID   int64           `json:"category_id"`
	Limit        decimal.Decimal `json:"limit"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	Percent      float64         `json:"percent"`
	Exceeded     bool            `json:"exceeded"`
}

// GoalStatus reports progress toward a savings goal.
type GoalStatus struct {
	Name          string          `json:"name"`
	TargetDate    *time.Time      `json:"target_date,omitempty"`
	ID            int64           `json:"id"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Percent       float64         `json:"percent"`
}

// NetWorthSummary aggregates account balances with tracked holdings.
type NetWorthSummary struct {
	AccountTotal decimal.Decimal `json:"account_total"`
	Assets       decimal.Decimal `json:"assets"`
	Liabilities  decimal.Decimal `json:"liabilities"`
	NetWorth     decimal.Decimal `json:"net_worth"`
}

// Overview is the top-level dashboard payload.
type Overview struct {
	Month     string           `json:"month"`
	Breakdown []CategorySpend  `json:"breakdown"`
	Trend     []MonthlySummary `json:"trend"`
	Budgets   []BudgetStatus   `json:"budgets"`
	Goals     []GoalStatus     `json:"goals"`
	NetWorth  NetWorthSummary  `json:"net_worth"`
}

// Generator computes reports for one storage backend.
type Generator struct {
	store service.Storage
}

// NewGenerator creates a report generator.
func NewGenerator(store service.Storage) *Generator {
	return &Generator{store: store}
}

// monthRange returns the [start, end) bounds of a "2006-01" month.
func monthRange(month string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// CategoryBreakdown sums debit spending per category for one month, with
// each category's share of the total. Transactions without a category land
// in an "Uncategorized" bucket.
func (g *Generator) CategoryBreakdown(ctx context.Context, userID, month string) ([]CategorySpend, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return nil, err
	}

	txns, err := g.store.GetTransactions(ctx, userID, service.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	categories, err := g.store.GetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	totals := make(map[string]*CategorySpend)
	grand := decimal.Zero
	for i := range txns {
		txn := &txns[i]
		if txn.Direction != model.DirectionDebit {
			continue
		}

		name := "Uncategorized"
		var catID *int64
		if txn.CategoryID != nil {
			if n, ok := names[*txn.CategoryID]; ok {
				name = n
				catID = txn.CategoryID
			}
		}

		spend, ok := totals[name]
		if !ok {
			spend = &CategorySpend{CategoryName: name, CategoryID: catID, Amount: decimal.Zero}
			totals[name] = spend
		}
		amount := txn.Amount.Abs()
		spend.Amount = spend.Amount.Add(amount)
		grand = grand.Add(amount)
	}

	breakdown := make([]CategorySpend, 0, len(totals))
	for _, spend := range totals {
		if grand.IsPositive() {
			pct, _ := spend.Amount.Div(grand).Mul(decimal.NewFromInt(100)).Float64()
			spend.Percent = pct
		}
		breakdown = append(breakdown, *spend)
	}
	sortBreakdown(breakdown)

	return breakdown, nil
}

// MonthlyTrend returns income and expense totals for the given number of
// months ending at the given month, oldest first.
func (g *Generator) MonthlyTrend(ctx context.Context, userID, endMonth string, months int) ([]MonthlySummary, error) {
	if months <= 0 {
		months = 6
	}

	end, _, err := monthRange(endMonth)
	if err != nil {
		return nil, err
	}
	start := end.AddDate(0, -(months - 1), 0)
	rangeEnd := end.AddDate(0, 1, 0)

	txns, err := g.store.GetTransactions(ctx, userID, service.TransactionFilter{
		StartDate: &start,
		EndDate:   &rangeEnd,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]MonthlySummary, months)
	index := make(map[string]*MonthlySummary, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		summaries[i] = MonthlySummary{
			Month:    month,
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
			Net:      decimal.Zero,
		}
		index[month] = &summaries[i]
	}

	for i := range txns {
		txn := &txns[i]
		summary, ok := index[txn.Date.Format("2006-01")]
		if !ok {
			continue
		}
		if txn.Direction == model.DirectionCredit {
			summary.Income = summary.Income.Add(txn.Amount.Abs())
		} else {
			summary.Expenses = summary.Expenses.Add(txn.Amount.Abs())
		}
	}

	for i := range summaries {
		summaries[i].Net = summaries[i].Income.Sub(summaries[i].Expenses)
	}

	return summaries, nil
}

// BudgetProgress reports spending against every budget configured for the month.
func (g *Generator) BudgetProgress(ctx context.Context, userID, month string) ([]BudgetStatus, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return nil, err
	}

	budgets, err := g.store.GetBudgets(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return nil, nil
	}

	txns, err := g.store.GetTransactions(ctx, userID, service.TransactionFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, err
	}

	spentByCategory := make(map[int64]decimal.Decimal)
	for i := range txns {
		txn := &txns[i]
		if txn.Direction != model.DirectionDebit || txn.CategoryID == nil {
			continue
		}
		spentByCategory[*txn.CategoryID] = spentByCategory[*txn.CategoryID].Add(txn.Amount.Abs())
	}

	categories, err := g.store.GetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		spent := spentByCategory[budget.CategoryID]
		status := BudgetStatus{
			CategoryID:   budget.CategoryID,
			CategoryName: names[budget.CategoryID],
			Month:        month,
			Limit:        budget.Amount,
			Spent:        spent,
			Remaining:    budget.Amount.Sub(spent),
			Exceeded:     spent.GreaterThan(budget.Amount),
		}
		if budget.Amount.IsPositive() {
			pct, _ := spent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Float64()
			status.Percent = pct
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// GoalProgress reports completion of every savings goal.
func (g *Generator) GoalProgress(ctx context.Context, userID string) ([]GoalStatus, error) {
	goals, err := g.store.GetGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]GoalStatus, 0, len(goals))
	for _, goal := range goals {
		status := GoalStatus{
			ID:            goal.ID,
			Name:          goal.Name,
			TargetAmount:  goal.TargetAmount,
			CurrentAmount: goal.CurrentAmount,
			TargetDate:    goal.TargetDate,
		}
		if goal.TargetAmount.IsPositive() {
			pct, _ := goal.CurrentAmount.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
			status.Percent = pct
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// NetWorth sums account balances and holdings.
func (g *Generator) NetWorth(ctx context.Context, userID string) (*NetWorthSummary, error) {
	accounts, err := g.store.GetAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := g.store.GetHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &NetWorthSummary{
		AccountTotal: decimal.Zero,
		Assets:       decimal.Zero,
		Liabilities:  decimal.Zero,
	}
	for _, account := range accounts {
		summary.AccountTotal = summary.AccountTotal.Add(account.Balance)
	}
	for _, holding := range holdings {
		if holding.Kind == model.HoldingAsset {
			summary.Assets = summary.Assets.Add(holding.Value)
		} else {
			summary.Liabilities = summary.Liabilities.Add(holding.Value)
		}
	}
	summary.NetWorth = summary.AccountTotal.Add(summary.Assets).Sub(summary.Liabilities)

	return summary, nil
}

// GenerateOverview assembles the full dashboard payload for one month.
func (g *Generator) GenerateOverview(ctx context.Context, userID, month string) (*Overview, error) {
	breakdown, err := g.CategoryBreakdown(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	trend, err := g.MonthlyTrend(ctx, userID, month, 6)
	if err != nil {
		return nil, err
	}
	budgets, err := g.BudgetProgress(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	goals, err := g.GoalProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	netWorth, err := g.NetWorth(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Month:     month,
		Breakdown: breakdown,
		Trend:     trend,
		Budgets:   budgets,
		Goals:     goals,
		NetWorth:  *netWorth,
	}, nil
}

// sortBreakdown orders slices by amount descending, name ascending on ties.
func sortBreakdown(breakdown []CategorySpend) {
	for i := 0; i < len(breakdown)-1; i++ {
		for j := 0; j < len(breakdown)-i-1; j++ {
			a, b := &breakdown[j], &breakdown[j+1]
			if a.Amount.LessThan(b.Amount) ||
				(a.Amount.Equal(b.Amount) && a.CategoryName > b.CategoryName) {
				breakdown[j], breakdown[j+1] = breakdown[j+1], breakdown[j]
			}
		}
	}
}
