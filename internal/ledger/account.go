package ledger

import (
	"sync"

	"github.com/shopspring/decimal"
)

// CurrencyBalance holds the non-negative amount of one currency for one account.
type CurrencyBalance struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// Balances is a snapshot of an account's holdings keyed by currency code.
type Balances map[string]CurrencyBalance

// account is the internal representation of a ledger identity. Its balances
// are guarded by the account's own mutex; the registry fields (id, username,
// passwordHash) are immutable after creation.
type account struct {
	id           int64
	username     string
	passwordHash []byte

	mu       sync.Mutex
	balances map[string]*CurrencyBalance
}

// AccountSnapshot is the read-only view of an account's identity handed to
// callers outside the store.
type AccountSnapshot struct {
	ID           int64
	Username     string
	PasswordHash []byte
}

func newAccount(id int64, username string, passwordHash []byte, codes []string) *account {
	balances := make(map[string]*CurrencyBalance, len(codes))
	for _, code := range codes {
		balances[code] = &CurrencyBalance{Code: code, Amount: decimal.Zero}
	}
	return &account{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		balances:     balances,
	}
}

// deposit adds amount to the balance. Callers validate amount >= 0 and must
// hold the account mutex.
func (b *CurrencyBalance) deposit(amount decimal.Decimal) {
	b.Amount = b.Amount.Add(amount)
}

// withdraw removes amount from the balance, refusing to overdraw. The check
// and decrement are a single step under the account mutex held by the caller.
func (b *CurrencyBalance) withdraw(amount decimal.Decimal) error {
	if b.Amount.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	b.Amount = b.Amount.Sub(amount)
	return nil
}

// snapshot copies the balances map. Must be called with the account mutex held.
func (a *account) snapshot() Balances {
	out := make(Balances, len(a.balances))
	for code, balance := range a.balances {
		out[code] = *balance
	}
	return out
}
