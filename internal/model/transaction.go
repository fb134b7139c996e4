package model

import "time"

type TransactionType string

const (
	TransactionEarn  TransactionType = "earn"
	TransactionSpend TransactionType = "spend"
	TransactionBonus TransactionType = "bonus"
)

// Transaction is one immutable ledger entry. BalanceAfter is a snapshot
// of the user balance at creation time and is never recomputed.
type Transaction struct {
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	Amount       int64           `json:"amount"`
	Description  string          `json:"description"`
	ChoreID      string          `json:"choreId,omitempty"`
	Timestamp    time.Time       `json:"timestamp"`
	BalanceAfter int64           `json:"balanceAfter"`
}
