package service

import (
	"context"
	"errors"
	"math"
	"time"

	"real-balance/internal/dto"
	"real-balance/internal/models"
	"real-balance/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type TransactionService struct {
	store  *repository.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewTransactionService(store *repository.Store, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns only userID's transactions, newest date first.
func (s *TransactionService) List(ctx context.Context, userID int64) ([]*models.Transaction, error) {
	transactions, err := s.store.Transactions().ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list transactions", err)
	}
	return transactions, nil
}

// Create records a transaction owned by userID. The category must be visible
// to userID; an omitted type takes the category's type.
func (s *TransactionService) Create(ctx context.Context, userID int64, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	if req.Amount == nil {
		return nil, validationError("amount", "amount is required")
	}
	if math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
		return nil, validationError("amount", "amount must be a finite number")
	}
	date := cleanText(req.Date)
	if date == "" {
		return nil, validationError("date", "date is required")
	}
	if req.CategoryID <= 0 {
		return nil, validationError("category_id", "category_id is required")
	}
	entryType := models.EntryType(req.Type)
	if entryType != "" && !entryType.Valid() {
		return nil, validationError("type", "type must be income or expense")
	}

	tx := &models.Transaction{
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      *req.Amount,
		Description: cleanText(req.Description),
		Date:        date,
		Type:        entryType,
		CreatedAt:   s.now(),
	}

	err := s.store.WithTx(ctx, func(repos repository.Repositories) error {
		category, err := repos.Categories.GetVisible(ctx, userID, req.CategoryID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return validationError("category_id", "category not found")
			}
			return err
		}
		if tx.Type == "" {
			tx.Type = category.Type
		} else if tx.Type != category.Type {
			return validationError("type", "type does not match the category type")
		}
		tx.CategoryName = category.Name
		return repos.Transactions.Create(ctx, tx)
	})
	if err != nil {
		return nil, storeError("create transaction", err)
	}

	s.logger.Debug("Transaction created", zap.Int64("user_id", userID), zap.Int64("transaction_id", tx.ID))
	return tx, nil
}

// Delete removes transaction id if userID owns it. Someone else's transaction
// and a missing one both answer ErrTransactionMissing.
func (s *TransactionService) Delete(ctx context.Context, userID, id int64) error {
	err := s.store.Transactions().DeleteOwned(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTransactionMissing
	}
	return storeError("delete transaction", err)
}

// Balance sums userID's transactions: income minus expense.
func (s *TransactionService) Balance(ctx context.Context, userID int64) (*dto.BalanceResponse, error) {
	transactions, err := s.store.Transactions().ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("balance", err)
	}

	income, expense := sumEntries(transactions)
	return &dto.BalanceResponse{
		Balance:      income.Sub(expense).InexactFloat64(),
		TotalIncome:  income.InexactFloat64(),
		TotalExpense: expense.InexactFloat64(),
	}, nil
}

// MonthlyStats totals userID's income and expense for one calendar month
// given as YYYY-MM. An empty month means the current one.
func (s *TransactionService) MonthlyStats(ctx context.Context, userID int64, month string) (*dto.MonthlyStatsResponse, error) {
	start := s.now().UTC()
	if month = cleanText(month); month != "" {
		parsed, err := time.Parse(monthLayout, month)
		if err != nil {
			return nil, validationError("month", "month must be formatted YYYY-MM")
		}
		start = parsed
	}
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	transactions, err := s.store.Transactions().ListByUserBetween(ctx, userID,
		start.Format(monthLayout), end.Format(monthLayout))
	if err != nil {
		return nil, storeError("monthly stats", err)
	}

	income, expense := sumEntries(transactions)
	return &dto.MonthlyStatsResponse{
		Month:          start.Format(monthLayout),
		MonthlyIncome:  income.InexactFloat64(),
		MonthlyExpense: expense.InexactFloat64(),
		MonthlyBalance: income.Sub(expense).InexactFloat64(),
	}, nil
}

const monthLayout = "2006-01"

func sumEntries(transactions []*models.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case models.EntryTypeIncome:
			income = income.Add(amount)
		case models.EntryTypeExpense:
			expense = expense.Add(amount)
		}
	}
	return income, expense
}
