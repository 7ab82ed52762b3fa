package dto

import (
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines a manual cash book entry.
// Date defaults to today and Category to "General".
type CreateTransactionRequest struct {
	Date        string                 `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required,gt=0"`
	Type        domain.TransactionType `json:"type" binding:"required,transaction_type"`
	Method      domain.PaymentMethod   `json:"method" binding:"required,payment_method"`
	Category    string                 `json:"category"`
	ProofImage  string                 `json:"proofImage"`
	CustomerID  *string                `json:"customerId"`
}

// ListTransactionsParams defines the filters and pagination for the transaction recap.
type ListTransactionsParams struct {
	Query      string                 `form:"q"`
	Period     string                 `form:"period"` // literal date prefix, e.g. 2023-10
	Type       domain.TransactionType `form:"type" binding:"omitempty,transaction_type"`
	Method     domain.PaymentMethod   `form:"method" binding:"omitempty,payment_method"`
	CustomerID string                 `form:"customerId"`
	Limit      int                    `form:"limit,default=50" binding:"min=1,max=500"`
	Offset     int                    `form:"offset,default=0" binding:"min=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID          string                 `json:"id"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Method      domain.PaymentMethod   `json:"method"`
	Category    string                 `json:"category,omitempty"`
	ProofImage  string                 `json:"proofImage,omitempty"`
	CustomerID  *string                `json:"customerId,omitempty"`
}

// ListTransactionsResponse is one page of the newest-first transaction log.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Method:      tx.Method,
		Category:    tx.Category,
		ProofImage:  tx.ProofImage,
		CustomerID:  tx.CustomerID,
	}
}

// ToListTransactionResponse converts a slice of domain.Transaction to TransactionResponse DTOs
func ToListTransactionResponse(txs []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txs))
	for i := range txs {
		res[i] = ToTransactionResponse(&txs[i])
	}
	return res
}
