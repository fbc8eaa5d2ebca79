package ledger

import "errors"

var (
	// ErrUsernameInvalid occurs when a registration request carries an empty
	// or otherwise unusable username.
	ErrUsernameInvalid = errors.New("username is required")

	// ErrUsernameExists indicates the requested username is already taken.
	ErrUsernameExists = errors.New("username already exists")

	// ErrInvalidAmount occurs when an amount is negative or not a finite number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnsupportedCurrency indicates a currency code outside the configured set.
	ErrUnsupportedCurrency = errors.New("unsupported currency")

	// ErrUnauthorized indicates the caller does not own the account being mutated.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAccountNotFound indicates the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrRecipientNotFound indicates the transfer destination does not exist.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrInsufficientFunds occurs when a withdrawal or transfer exceeds the
	// available balance. A business outcome, not a bug.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
