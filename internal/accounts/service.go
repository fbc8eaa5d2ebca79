package accounts

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/kopiyka/kopiyka/internal/auth"
	"github.com/kopiyka/kopiyka/internal/ledger"
)

var (
	// ErrPasswordRequired occurs when a registration request omits the password.
	ErrPasswordRequired = errors.New("password is required")
	// ErrInvalidCredentials indicates an unknown username or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service manages account registration and login on top of the ledger store.
type Service struct {
	store  *ledger.Store
	tokens *auth.Tokens
}

// NewService builds an accounts service.
func NewService(store *ledger.Store, tokens *auth.Tokens) *Service {
	return &Service{store: store, tokens: tokens}
}

// RegisterInput captures data required to open an account.
type RegisterInput struct {
	Username       string
	Password       string
	InitialBalance decimal.Decimal
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	AccountID int64
	Balances  ledger.Balances
	Token     string
}

// Register opens an account with hashed credentials, seeds the optional
// initial balance and issues an identity token.
func (s *Service) Register(_ context.Context, input RegisterInput) (RegisterResult, error) {
	if input.Password == "" {
		return RegisterResult{}, ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return RegisterResult{}, err
	}

	id, balances, err := s.store.CreateAccount(input.Username, hash, input.InitialBalance)
	if err != nil {
		return RegisterResult{}, err
	}

	token, err := s.tokens.Issue(id)
	if err != nil {
		return RegisterResult{}, err
	}

	return RegisterResult{AccountID: id, Balances: balances, Token: token}, nil
}

// LoginInput captures login credentials.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	AccountID int64
	Token     string
}

// Login verifies the password against the stored hash and issues a fresh
// token. Unknown usernames and wrong passwords report the same error.
func (s *Service) Login(_ context.Context, input LoginInput) (LoginResult, error) {
	snapshot, err := s.store.FindByUsername(input.Username)
	if err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(snapshot.PasswordHash, []byte(input.Password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(snapshot.ID)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{AccountID: snapshot.ID, Token: token}, nil
}
