package dto

import "real-balance/internal/models"

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CategoryResponse carries user_id null for the shared default categories.
type CategoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	UserID *int64 `json:"user_id"`
}

// CreateTransactionRequest has no owner field; the caller always owns what it creates.
type CreateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	CategoryID  int64    `json:"category_id"`
}

type TransactionResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	Date         string  `json:"date"`
	Type         string  `json:"type"`
}

type BalanceResponse struct {
	Balance      float64 `json:"balance"`
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
}

// MonthlyStatsResponse covers the transactions dated within Month (YYYY-MM).
type MonthlyStatsResponse struct {
	Month          string  `json:"month"`
	MonthlyIncome  float64 `json:"monthly_income"`
	MonthlyExpense float64 `json:"monthly_expense"`
	MonthlyBalance float64 `json:"monthly_balance"`
}

func NewCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:     category.ID,
		Name:   category.Name,
		Type:   string(category.Type),
		UserID: category.OwnerID(),
	}
}

func NewCategoryResponses(categories []*models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, NewCategoryResponse(c))
	}
	return out
}

func NewTransactionResponse(tx *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		UserID:       tx.UserID,
		CategoryID:   tx.CategoryID,
		CategoryName: tx.CategoryName,
		Amount:       tx.Amount,
		Description:  tx.Description,
		Date:         tx.Date,
		Type:         string(tx.Type),
	}
}

func NewTransactionResponses(transactions []*models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
