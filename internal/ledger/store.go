package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Store owns all accounts, identity allocation and the transaction log. It is
// the single serialization point for balance mutations: every operation on an
// account's balances runs under that account's mutex, and transfers lock both
// accounts in ascending id order so opposing transfers cannot deadlock.
type Store struct {
	codes       []string
	supported   map[string]struct{}
	defaultCode string

	mu         sync.RWMutex
	accounts   map[int64]*account
	byUsername map[string]int64
	nextID     int64

	logMu sync.Mutex
	log   []TransactionRecord
}

// NewStore builds an empty store supporting the given currency codes. Codes
// are normalized to uppercase; defaultCode must be a member of the set.
func NewStore(codes []string, defaultCode string) (*Store, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("at least one currency code is required")
	}
	supported := make(map[string]struct{}, len(codes))
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		code = normalizeCurrency(code)
		if code == "" {
			return nil, fmt.Errorf("empty currency code")
		}
		if _, dup := supported[code]; dup {
			continue
		}
		supported[code] = struct{}{}
		normalized = append(normalized, code)
	}
	defaultCode = normalizeCurrency(defaultCode)
	if _, ok := supported[defaultCode]; !ok {
		return nil, fmt.Errorf("default currency %q is not in the supported set", defaultCode)
	}
	return &Store{
		codes:       normalized,
		supported:   supported,
		defaultCode: defaultCode,
		accounts:    make(map[int64]*account),
		byUsername:  make(map[string]int64),
	}, nil
}

// Currencies returns the supported currency codes in configuration order.
func (s *Store) Currencies() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// DefaultCurrency returns the code used when a request omits the currency.
func (s *Store) DefaultCurrency() string {
	return s.defaultCode
}

// CreateAccount allocates a new account with zeroed balances for every
// supported currency, seeding the default currency with initialBalance.
// Validation order: username presence, username uniqueness, amount validity.
// Nothing is created when any check fails.
func (s *Store) CreateAccount(username string, passwordHash []byte, initialBalance decimal.Decimal) (int64, Balances, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, nil, ErrUsernameInvalid
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[username]; exists {
		return 0, nil, ErrUsernameExists
	}
	if initialBalance.IsNegative() {
		return 0, nil, ErrInvalidAmount
	}

	s.nextID++
	acct := newAccount(s.nextID, username, passwordHash, s.codes)
	acct.balances[s.defaultCode].deposit(initialBalance)
	s.accounts[acct.id] = acct
	s.byUsername[username] = acct.id

	return acct.id, acct.snapshot(), nil
}

// FindByUsername resolves login credentials for the accounts service.
func (s *Store) FindByUsername(username string) (AccountSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[strings.TrimSpace(username)]
	if !ok {
		return AccountSnapshot{}, ErrAccountNotFound
	}
	acct := s.accounts[id]
	return AccountSnapshot{ID: acct.id, Username: acct.username, PasswordHash: acct.passwordHash}, nil
}

// Exists reports whether an account id is registered.
func (s *Store) Exists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[id]
	return ok
}

// Deposit credits amount of the given currency to the account. The caller
// must own the account. Validation order: authorization, amount, currency.
func (s *Store) Deposit(callerID, accountID int64, amount decimal.Decimal, currency string) (Balances, error) {
	acct, code, err := s.prepareMutation(callerID, accountID, amount, currency)
	if err != nil {
		return nil, err
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()

	acct.balances[code].deposit(amount)
	snapshot := acct.snapshot()
	s.append(TransactionRecord{
		Timestamp: time.Now().UTC(),
		ActorID:   acct.id,
		Action:    ActionDeposit,
		Amount:    amount,
		Currency:  code,
	})
	return snapshot, nil
}

// Withdraw debits amount of the given currency from the account. A failed
// withdrawal leaves the balance untouched and appends no log entry.
func (s *Store) Withdraw(callerID, accountID int64, amount decimal.Decimal, currency string) (Balances, error) {
	acct, code, err := s.prepareMutation(callerID, accountID, amount, currency)
	if err != nil {
		return nil, err
	}

	acct.mu.Lock()
	defer acct.mu.Unlock()

	if err := acct.balances[code].withdraw(amount); err != nil {
		return nil, err
	}
	snapshot := acct.snapshot()
	s.append(TransactionRecord{
		Timestamp: time.Now().UTC(),
		ActorID:   acct.id,
		Action:    ActionWithdraw,
		Amount:    amount,
		Currency:  code,
	})
	return snapshot, nil
}

// Transfer atomically moves amount from one account to another and appends a
// single transfer record. All-or-nothing: when the debit fails the credit and
// the log append never happen. Validation order: authorization, recipient
// existence, amount, currency.
func (s *Store) Transfer(callerID, fromID, toID int64, amount decimal.Decimal, currency string) (Balances, Balances, error) {
	if callerID != fromID {
		return nil, nil, ErrUnauthorized
	}

	s.mu.RLock()
	from, fromOK := s.accounts[fromID]
	to, toOK := s.accounts[toID]
	s.mu.RUnlock()

	if !toOK {
		return nil, nil, ErrRecipientNotFound
	}
	if !fromOK {
		return nil, nil, ErrAccountNotFound
	}
	if amount.IsNegative() {
		return nil, nil, ErrInvalidAmount
	}
	code, err := s.resolveCurrency(currency)
	if err != nil {
		return nil, nil, err
	}

	first, second := from, to
	if second.id < first.id {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	if first != second {
		second.mu.Lock()
		defer second.mu.Unlock()
	}

	if err := from.balances[code].withdraw(amount); err != nil {
		return nil, nil, err
	}
	to.balances[code].deposit(amount)

	fromSnapshot := from.snapshot()
	toSnapshot := to.snapshot()
	s.append(TransactionRecord{
		Timestamp:   time.Now().UTC(),
		ActorID:     from.id,
		Action:      ActionTransfer,
		Amount:      amount,
		Currency:    code,
		RecipientID: to.id,
	})
	return fromSnapshot, toSnapshot, nil
}

// Balances returns a read-only snapshot of the account's holdings.
func (s *Store) Balances(accountID int64) (Balances, error) {
	s.mu.RLock()
	acct, ok := s.accounts[accountID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrAccountNotFound
	}
	acct.mu.Lock()
	defer acct.mu.Unlock()
	return acct.snapshot(), nil
}

// Transactions returns every log entry where the account is actor or
// recipient, in append order. The returned slice is a copy.
func (s *Store) Transactions(accountID int64) ([]TransactionRecord, error) {
	if !s.Exists(accountID) {
		return nil, ErrAccountNotFound
	}

	s.logMu.Lock()
	defer s.logMu.Unlock()

	out := make([]TransactionRecord, 0)
	for _, record := range s.log {
		if record.ActorID == accountID || record.RecipientID == accountID {
			out = append(out, record)
		}
	}
	return out, nil
}

// prepareMutation runs the shared single-account validation chain and
// resolves the target account.
func (s *Store) prepareMutation(callerID, accountID int64, amount decimal.Decimal, currency string) (*account, string, error) {
	if callerID != accountID {
		return nil, "", ErrUnauthorized
	}
	if amount.IsNegative() {
		return nil, "", ErrInvalidAmount
	}
	code, err := s.resolveCurrency(currency)
	if err != nil {
		return nil, "", err
	}

	s.mu.RLock()
	acct, ok := s.accounts[accountID]
	s.mu.RUnlock()
	if !ok {
		return nil, "", ErrAccountNotFound
	}
	return acct, code, nil
}

func (s *Store) resolveCurrency(currency string) (string, error) {
	code := normalizeCurrency(currency)
	if code == "" {
		return s.defaultCode, nil
	}
	if _, ok := s.supported[code]; !ok {
		return "", ErrUnsupportedCurrency
	}
	return code, nil
}

// append adds a record to the log. Callers hold the mutated account locks, so
// no reader observes an entry before its mutation is committed.
func (s *Store) append(record TransactionRecord) {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.log = append(s.log, record)
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
