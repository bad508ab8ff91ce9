package domain

import "time" // Timestamps

// TxKind is the direction of a ledger entry
type TxKind string

const (
	KindDeposit    TxKind = "deposit"    // Money in
	KindWithdrawal TxKind = "withdrawal" // Money out
)

// DefaultNote is stored when a transaction carries no note
const DefaultNote = "-"

// MaxNoteLength bounds the note accepted from callers
const MaxNoteLength = 120

// Transaction Model
type Transaction struct {
	ID        string    `json:"id"`        // Unique transaction ID
	Timestamp time.Time `json:"timestamp"` // Time the entry was appended
	Kind      TxKind    `json:"kind"`      // Transaction type: deposit, withdrawal
	Amount    int64     `json:"amount"`    // Amount in the smallest currency unit
	Note      string    `json:"note"`      // Free text note
}
