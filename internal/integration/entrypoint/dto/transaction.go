package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/life-planner/backend/internal/domain/aggregation"
	"github.com/life-planner/backend/internal/domain/entity"
	"github.com/life-planner/backend/internal/domain/state"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind" binding:"required"`
	Category    string          `json:"category,omitempty" binding:"max=100"`
	Status      *string         `json:"status,omitempty"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty" binding:"omitempty,max=255"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Kind        *string          `json:"kind,omitempty"`
	Category    *string          `json:"category,omitempty" binding:"omitempty,max=100"`
	Status      *string          `json:"status,omitempty"`
}

// BulkDeleteTransactionsRequest represents the request body for bulk transaction deletion.
type BulkDeleteTransactionsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Window       *WindowResponse       `json:"window,omitempty"`
	Transactions []TransactionResponse `json:"transactions"`
}

// BulkDeleteTransactionsResponse represents the response for bulk transaction deletion.
type BulkDeleteTransactionsResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// ToTransactionResponse converts a transaction entity to its response DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		Date:        t.Date.Format(state.DateLayout),
		Description: t.Description,
		Amount:      t.Amount.StringFixed(2),
		Kind:        string(t.Kind),
		Category:    t.Category,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToTransactionResponses converts a list of transactions.
func ToTransactionResponses(in []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(in))
	for _, t := range in {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

func toTransactionValueResponses(in []entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(in))
	for i := range in {
		out = append(out, ToTransactionResponse(&in[i]))
	}
	return out
}

// ToTransactionListResponse builds the list response.
func ToTransactionListResponse(window *aggregation.Window, transactions []*entity.Transaction) TransactionListResponse {
	return TransactionListResponse{
		Window:       ToWindowResponsePtr(window),
		Transactions: ToTransactionResponses(transactions),
	}
}
