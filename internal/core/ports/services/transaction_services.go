package services

import (
	"context"

	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
)

// TransactionReaderSvc defines read operations for the cash book
type TransactionReaderSvc interface {
	// ListTransactions returns one page of matching transactions, newest first, and the total match count.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, int, error)
}

// TransactionWriterSvc defines write operations for the cash book
type TransactionWriterSvc interface {
	// CreateTransaction prepends a manually entered transaction to the log.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
