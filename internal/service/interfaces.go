// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hollis/pennyflow/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// All queries are additionally scoped to a single user.
type TransactionFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *int64
	AccountID  string
	Status     model.CategorizationStatus
	Limit      int
	Offset     int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, email, passwordHash string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// Category operations
	UpsertCategory(ctx context.Context, userID, name, icon string) (*model.Category, error)
	GetCategories(ctx context.Context, userID string) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, userID string, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, userID, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, userID string, id int64) error

	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccounts(ctx context.Context, userID string) ([]model.Account, error)
	GetAccountByID(ctx context.Context, userID, id string) (*model.Account, error)
	UpdateAccountBalance(ctx context.Context, userID, id string, balance decimal.Decimal) error
	DeleteAccount(ctx context.Context, userID, id string) error

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error)
	GetTransactionByID(ctx context.Context, userID, id string) (*model.Transaction, error)
	GetTransactions(ctx context.Context, userID string, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, userID, id string, categoryID *int64, validated bool) error
	DeleteTransaction(ctx context.Context, userID, id string) error

	// Budget operations
	UpsertBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context, userID, month string) ([]model.Budget, error)
	DeleteBudget(ctx context.Context, userID string, id int64) error

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoals(ctx context.Context, userID string) ([]model.Goal, error)
	UpdateGoalProgress(ctx context.Context, userID string, id int64, current decimal.Decimal) error
	DeleteGoal(ctx context.Context, userID string, id int64) error

	// Holding operations
	CreateHolding(ctx context.Context, holding *model.Holding) error
	GetHoldings(ctx context.Context, userID string) ([]model.Holding, error)
	DeleteHolding(ctx context.Context, userID string, id int64) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
