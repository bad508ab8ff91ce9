package ledger

import (
	"strings"
	"time"

	"savings_ledger/internal/domain"

	"github.com/google/uuid"
)

// Account is one balance pool together with its transaction log and
// withdrawal cooldown. The zero value is an empty, usable account.
//
// Fields are only changed by the deposit/withdraw policies in this package,
// so balance >= 0 holds for every Account a caller can observe.
type Account struct {
	balance          int64
	log              []domain.Transaction
	lastWithdrawalAt *time.Time
}

// Balance returns the current balance.
func (a *Account) Balance() int64 { return a.balance }

// LastWithdrawalAt returns the time of the last successful withdrawal.
func (a *Account) LastWithdrawalAt() (time.Time, bool) {
	if a.lastWithdrawalAt == nil {
		return time.Time{}, false
	}
	return *a.lastWithdrawalAt, true
}

// Transactions returns a copy of the log in chronological order.
func (a *Account) Transactions() []domain.Transaction {
	out := make([]domain.Transaction, len(a.log))
	copy(out, a.log)
	return out
}

// Totals sums the log by kind.
func (a *Account) Totals() (deposited, withdrawn int64) {
	for _, tx := range a.log {
		switch tx.Kind {
		case domain.KindDeposit:
			deposited += tx.Amount
		case domain.KindWithdrawal:
			withdrawn += tx.Amount
		}
	}
	return deposited, withdrawn
}

// View returns a read-only copy of the account state.
func (a *Account) View() domain.AccountView {
	return domain.AccountView{
		Balance:          a.balance,
		LastWithdrawalAt: a.lastWithdrawalCopy(),
		Transactions:     len(a.log),
	}
}

func (a *Account) lastWithdrawalCopy() *time.Time {
	if a.lastWithdrawalAt == nil {
		return nil
	}
	t := *a.lastWithdrawalAt
	return &t
}

func (a *Account) markWithdrawal(at time.Time) {
	a.lastWithdrawalAt = &at
}

func (a *Account) append(kind domain.TxKind, amount int64, note string, at time.Time) domain.Transaction {
	tx := domain.Transaction{
		ID:        uuid.NewString(),
		Timestamp: at,
		Kind:      kind,
		Amount:    amount,
		Note:      normalizeNote(note),
	}
	a.log = append(a.log, tx)
	return tx
}

// normalizeNote keeps the caller's note as is; blank notes become "-".
func normalizeNote(note string) string {
	if strings.TrimSpace(note) == "" {
		return domain.DefaultNote
	}
	return note
}
