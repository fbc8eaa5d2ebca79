package funding

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kopiyka/kopiyka/internal/ledger"
)

// Service exposes single-account funding operations on the ledger store.
type Service struct {
	store *ledger.Store
}

// NewService builds a funding service.
func NewService(store *ledger.Store) *Service {
	return &Service{store: store}
}

// Input captures a deposit or withdrawal request. Currency may be empty, in
// which case the store applies its default currency.
type Input struct {
	CallerID  int64
	AccountID int64
	Amount    decimal.Decimal
	Currency  string
}

// Deposit credits the account and returns its updated balances.
func (s *Service) Deposit(_ context.Context, input Input) (ledger.Balances, error) {
	return s.store.Deposit(input.CallerID, input.AccountID, input.Amount, input.Currency)
}

// Withdraw debits the account and returns its updated balances.
func (s *Service) Withdraw(_ context.Context, input Input) (ledger.Balances, error) {
	return s.store.Withdraw(input.CallerID, input.AccountID, input.Amount, input.Currency)
}
