package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/isp_bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/isp_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/repositories"
)

// Container owns the four in-memory collections and mirrors every mutation to the store.
//
// Memory is the read-of-record; the store is only read in Load. Each mutation
// serializes the whole collection and writes it before swapping the in-memory
// copy, so a failed write leaves memory untouched. The mutex keeps store writes
// in mutation order.
type Container struct {
	mu     sync.Mutex
	repo   portsrepo.StateRepositoryFacade
	logger *slog.Logger

	customers    []domain.Customer
	transactions []domain.Transaction // newest first
	investors    []domain.Investor
	settings     domain.CompanySettings
}

// Load reads every collection from repo. A collection with no stored value is
// seeded and the seed written back; one that fails to decode or validate is
// replaced in memory by the seed and left in the store until the next mutation.
func Load(ctx context.Context, repo portsrepo.StateRepositoryFacade, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{repo: repo, logger: logger}

	var err error
	if c.customers, err = loadCollection(ctx, c, portsrepo.KeyCustomers, domain.SeedCustomers, validateAll(domain.Customer.Validate)); err != nil {
		return nil, err
	}
	if c.transactions, err = loadCollection(ctx, c, portsrepo.KeyTransactions, domain.SeedTransactions, validateAll(domain.Transaction.Validate)); err != nil {
		return nil, err
	}
	if c.settings, err = loadCollection(ctx, c, portsrepo.KeySettings, domain.SeedSettings, func(domain.CompanySettings) error { return nil }); err != nil {
		return nil, err
	}
	if c.investors, err = loadCollection(ctx, c, portsrepo.KeyInvestors, domain.SeedInvestors, validateAll(domain.Investor.Validate)); err != nil {
		return nil, err
	}

	logger.Info("Application state loaded",
		slog.Int("customers", len(c.customers)),
		slog.Int("transactions", len(c.transactions)),
		slog.Int("investors", len(c.investors)))
	return c, nil
}

func validateAll[E any](validate func(E) error) func([]E) error {
	return func(items []E) error {
		for i, item := range items {
			if err := validate(item); err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
		}
		return nil
	}
}

func loadCollection[T any](ctx context.Context, c *Container, key string, seed func() T, validate func(T) error) (T, error) {
	blob, err := c.repo.Get(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		c.logger.Info("No stored state, using seed data", slog.String("key", key))
		v := seed()
		if err := c.write(ctx, key, v); err != nil {
			return v, err
		}
		return v, nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read %s from store: %w", key, err)
	}

	var v T
	if err := json.Unmarshal(blob, &v); err != nil {
		c.logger.Warn("Stored state is corrupt, falling back to seed data", slog.String("key", key), slog.String("error", err.Error()))
		return seed(), nil
	}
	if err := validate(v); err != nil {
		c.logger.Warn("Stored state failed validation, falling back to seed data", slog.String("key", key), slog.String("error", err.Error()))
		return seed(), nil
	}
	return v, nil
}

func (c *Container) write(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.repo.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	c.logger.Debug("State persisted", slog.String("key", key), slog.Int("bytes", len(blob)))
	return nil
}

func cloneSlice[E any](s []E) []E {
	out := make([]E, len(s))
	copy(out, s)
	return out
}

// apply runs fn on a copy of *cur, persists the result and only then swaps it in.
// Callers must hold c.mu.
func apply[T any](ctx context.Context, c *Container, key string, cur *T, copyOf func(T) T, fn func(T) (T, error)) (T, error) {
	var zero T
	next, err := fn(copyOf(*cur))
	if err != nil {
		return zero, err
	}
	next = copyOf(next)
	if err := c.write(ctx, key, next); err != nil {
		return zero, err
	}
	*cur = next
	return copyOf(next), nil
}

func identity[T any](v T) T { return v }

// Customers returns a copy of all customers.
func (c *Container) Customers() []domain.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSlice(c.customers)
}

// Transactions returns a copy of the transaction log, newest first.
func (c *Container) Transactions() []domain.Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSlice(c.transactions)
}

// Investors returns a copy of all investors.
func (c *Container) Investors() []domain.Investor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneSlice(c.investors)
}

// Settings returns the company settings.
func (c *Container) Settings() domain.CompanySettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// UpdateCustomers replaces the customer collection with fn's result.
func (c *Container) UpdateCustomers(ctx context.Context, fn func([]domain.Customer) ([]domain.Customer, error)) ([]domain.Customer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return apply(ctx, c, portsrepo.KeyCustomers, &c.customers, cloneSlice[domain.Customer], fn)
}

// UpdateTransactions replaces the transaction log with fn's result.
func (c *Container) UpdateTransactions(ctx context.Context, fn func([]domain.Transaction) ([]domain.Transaction, error)) ([]domain.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return apply(ctx, c, portsrepo.KeyTransactions, &c.transactions, cloneSlice[domain.Transaction], fn)
}

// PrependTransaction puts tx at the head of the log.
func (c *Container) PrependTransaction(ctx context.Context, tx domain.Transaction) error {
	_, err := c.UpdateTransactions(ctx, func(txs []domain.Transaction) ([]domain.Transaction, error) {
		return append([]domain.Transaction{tx}, txs...), nil
	})
	return err
}

// UpdateInvestors replaces the investor collection with fn's result.
func (c *Container) UpdateInvestors(ctx context.Context, fn func([]domain.Investor) ([]domain.Investor, error)) ([]domain.Investor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return apply(ctx, c, portsrepo.KeyInvestors, &c.investors, cloneSlice[domain.Investor], fn)
}

// UpdateSettings replaces the settings record with fn's result.
func (c *Container) UpdateSettings(ctx context.Context, fn func(domain.CompanySettings) (domain.CompanySettings, error)) (domain.CompanySettings, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return apply(ctx, c, portsrepo.KeySettings, &c.settings, identity[domain.CompanySettings], fn)
}

// SettleFunc turns a customer into its settled form plus the payment transaction.
type SettleFunc func(domain.Customer) (domain.Customer, domain.Transaction, error)

// SettleCustomer prepends the payment transaction, then replaces the customer.
// If the customer write fails the transaction log is restored.
func (c *Container) SettleCustomer(ctx context.Context, customerID string, settle SettleFunc) (domain.Customer, domain.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := domain.FindCustomer(c.customers, customerID)
	if idx < 0 {
		return domain.Customer{}, domain.Transaction{}, apperrors.NewAppError(apperrors.ErrNotFound, "customer %s", customerID)
	}

	updated, tx, err := settle(c.customers[idx])
	if err != nil {
		return domain.Customer{}, domain.Transaction{}, err
	}

	previousTxs := c.transactions
	if _, err := apply(ctx, c, portsrepo.KeyTransactions, &c.transactions, cloneSlice[domain.Transaction],
		func(txs []domain.Transaction) ([]domain.Transaction, error) {
			return append([]domain.Transaction{tx}, txs...), nil
		}); err != nil {
		return domain.Customer{}, domain.Transaction{}, err
	}

	if _, err := apply(ctx, c, portsrepo.KeyCustomers, &c.customers, cloneSlice[domain.Customer],
		func(customers []domain.Customer) ([]domain.Customer, error) {
			customers[idx] = updated
			return customers, nil
		}); err != nil {
		c.transactions = previousTxs
		if rerr := c.write(ctx, portsrepo.KeyTransactions, previousTxs); rerr != nil {
			c.logger.Error("Failed to restore transactions after settlement failure",
				slog.String("customer_id", customerID),
				slog.String("transaction_id", tx.ID),
				slog.String("error", rerr.Error()))
		}
		return domain.Customer{}, domain.Transaction{}, err
	}

	return updated, tx, nil
}
