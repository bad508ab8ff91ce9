package ledger

import (
	"fmt"

	"savings_ledger/internal/domain"
)

// AccountKind selects the pool an operation works on.
type AccountKind string

const (
	MainAccount AccountKind = "main"
	GoalAccount AccountKind = "goal"
)

// Handle addresses one account of one user. Goal is only read when Kind is
// GoalAccount.
type Handle struct {
	UserID string
	Kind   AccountKind
	Goal   string
}

// Main addresses the main balance of userID.
func Main(userID string) Handle {
	return Handle{UserID: userID, Kind: MainAccount}
}

// GoalOf addresses the named goal of userID.
func GoalOf(userID, name string) Handle {
	return Handle{UserID: userID, Kind: GoalAccount, Goal: name}
}

func (h Handle) String() string {
	if h.Kind == GoalAccount {
		return "goal:" + h.Goal
	}
	return string(h.Kind)
}

// Book groups the accounts owned by one user: the main balance and the goal
// registry.
type Book struct {
	main  *Account
	goals *Registry
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{main: &Account{}, goals: NewRegistry()}
}

func (b *Book) Main() *Account   { return b.main }
func (b *Book) Goals() *Registry { return b.goals }

// Summary returns the balance overview of the book.
func (b *Book) Summary() domain.Summary {
	return domain.Summary{
		Main:  b.main.View(),
		Goals: goalViews(b.goals.List()),
	}
}

// History returns a copy of the log of the account addressed by h. Only
// h.Kind and h.Goal are read.
func (b *Book) History(h Handle) ([]domain.Transaction, error) {
	acct, _, err := b.resolve(h)
	if err != nil {
		return nil, err
	}
	return acct.Transactions(), nil
}

// BookFinder resolves a user ID to the user's book.
type BookFinder interface {
	Book(userID string) (*Book, error)
}

// resolve returns the account addressed by h and, for goal handles, the goal.
func (b *Book) resolve(h Handle) (*Account, *Goal, error) {
	switch h.Kind {
	case MainAccount:
		return b.main, nil, nil
	case GoalAccount:
		g, err := b.goals.Get(h.Goal)
		if err != nil {
			return nil, nil, err
		}
		return &g.Account, g, nil
	default:
		return nil, nil, fmt.Errorf("unknown account kind %q", h.Kind)
	}
}
