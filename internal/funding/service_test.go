package funding

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kopiyka/kopiyka/internal/ledger"
)

func newTestStore(t *testing.T) (*ledger.Store, int64) {
	t.Helper()
	store, err := ledger.NewStore([]string{"UAH", "USD"}, "UAH")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	id, _, err := store.CreateAccount("alice", []byte("hash"), decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return store, id
}

func TestDepositThenWithdraw(t *testing.T) {
	store, id := newTestStore(t)
	svc := NewService(store)
	ctx := context.Background()

	balances, err := svc.Deposit(ctx, Input{CallerID: id, AccountID: id, Amount: decimal.NewFromInt(25), Currency: "usd"})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if !balances["USD"].Amount.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected USD 25, got %+v", balances)
	}

	balances, err = svc.Withdraw(ctx, Input{CallerID: id, AccountID: id, Amount: decimal.NewFromInt(30)})
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !balances["UAH"].Amount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected UAH 20 after default-currency withdraw, got %+v", balances)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	store, id := newTestStore(t)
	svc := NewService(store)

	_, err := svc.Withdraw(context.Background(), Input{CallerID: id, AccountID: id, Amount: decimal.NewFromInt(1000)})
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestDepositRequiresOwnership(t *testing.T) {
	store, id := newTestStore(t)
	svc := NewService(store)

	_, err := svc.Deposit(context.Background(), Input{CallerID: id + 1, AccountID: id, Amount: decimal.NewFromInt(5)})
	if !errors.Is(err, ledger.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
