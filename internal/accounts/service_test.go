package accounts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kopiyka/kopiyka/internal/auth"
	"github.com/kopiyka/kopiyka/internal/ledger"
)

func newTestService(t *testing.T) (*Service, *ledger.Store, *auth.Tokens) {
	t.Helper()
	store, err := ledger.NewStore([]string{"UAH", "USD", "EUR"}, "UAH")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewService(store, tokens), store, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "s3cret", InitialBalance: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.AccountID != 1 {
		t.Fatalf("expected account id 1, got %d", res.AccountID)
	}
	if !res.Balances["UAH"].Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected seeded UAH balance, got %+v", res.Balances)
	}

	id, err := tokens.Verify(res.Token)
	if err != nil || id != res.AccountID {
		t.Fatalf("registration token does not resolve to the account: id=%d err=%v", id, err)
	}

	login, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.AccountID != res.AccountID {
		t.Fatalf("login resolved wrong account: %d", login.AccountID)
	}
}

func TestRegisterRejectsMissingPassword(t *testing.T) {
	svc, store, _ := newTestService(t)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "alice"}); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if store.Exists(1) {
		t.Fatal("no account should have been created")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"}); !errors.Is(err, ledger.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Username: "ghost", Password: "pw"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}
