package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Action enumerates the mutations captured in the transaction log.
type Action string

const (
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
	ActionTransfer Action = "transfer"
)

// TransactionRecord is one immutable entry of the append-only transaction
// log. RecipientID is zero except for transfers; account ids start at 1.
type TransactionRecord struct {
	Timestamp   time.Time       `json:"timestamp"`
	ActorID     int64           `json:"actor_id"`
	Action      Action          `json:"action"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	RecipientID int64           `json:"recipient_id,omitempty"`
}
