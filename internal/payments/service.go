package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kopiyka/kopiyka/internal/ledger"
	"github.com/kopiyka/kopiyka/internal/notification"
)

// Service posts transfers between accounts and notifies recipients.
type Service struct {
	store    *ledger.Store
	notifier notification.Notifier
}

// NewService constructs a payments service.
func NewService(store *ledger.Store, notifier notification.Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// TransferInput captures the data needed to move funds between accounts.
type TransferInput struct {
	CallerID int64
	FromID   int64
	ToID     int64
	Amount   decimal.Decimal
	Currency string
}

// TransferResult describes the outcome of a completed transfer.
type TransferResult struct {
	FromID       int64
	ToID         int64
	FromBalances ledger.Balances
	ToBalances   ledger.Balances
	CompletedAt  time.Time
}

// Transfer atomically debits the source and credits the destination.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (TransferResult, error) {
	fromBalances, toBalances, err := s.store.Transfer(input.CallerID, input.FromID, input.ToID, input.Amount, input.Currency)
	if err != nil {
		return TransferResult{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:      notification.KindTransferReceived,
			AccountID: input.ToID,
			Body:      fmt.Sprintf("You received %s from account %d", input.Amount, input.FromID),
		})
	}

	return TransferResult{
		FromID:       input.FromID,
		ToID:         input.ToID,
		FromBalances: fromBalances,
		ToBalances:   toBalances,
		CompletedAt:  time.Now().UTC(),
	}, nil
}
