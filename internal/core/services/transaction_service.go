package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/state"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils/accounting"
)

type transactionService struct {
	BaseService
	state *state.Container
}

// NewTransactionService creates the cash book service.
func NewTransactionService(st *state.Container, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{BaseService: newBaseService(options), state: st}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, int, error) {
	txs := s.state.Transactions()
	if params.Period != "" {
		txs = accounting.PeriodFilter(txs, params.Period)
	}

	matched := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if params.Type != "" && tx.Type != params.Type {
			continue
		}
		if params.Method != "" && tx.Method != params.Method {
			continue
		}
		if params.CustomerID != "" && (tx.CustomerID == nil || *tx.CustomerID != params.CustomerID) {
			continue
		}
		if !tx.MatchesQuery(params.Query) {
			continue
		}
		matched = append(matched, tx)
	}

	total := len(matched)
	if params.Offset >= total {
		return []domain.Transaction{}, total, nil
	}
	end := total
	if params.Limit > 0 && params.Offset+params.Limit < total {
		end = params.Offset + params.Limit
	}
	return matched[params.Offset:end], total, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	date := req.Date
	if date == "" {
		date = s.Today()
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.CategoryGeneral
	}
	var customerID *string
	if req.CustomerID != nil && strings.TrimSpace(*req.CustomerID) != "" {
		id := strings.TrimSpace(*req.CustomerID)
		customerID = &id
	}

	tx := domain.Transaction{
		ID:          s.IDs.NewID("TX"),
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Type:        req.Type,
		Method:      req.Method,
		Category:    category,
		ProofImage:  req.ProofImage,
		CustomerID:  customerID,
	}
	if err := tx.Validate(); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "%s", err.Error())
	}

	if err := s.state.PrependTransaction(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to record transaction", slog.String("transaction_id", tx.ID))
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", tx.ID),
		slog.String("type", string(tx.Type)),
		slog.String("amount", tx.Amount.String()))
	return &tx, nil
}
