package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"savings_ledger/internal/domain"

	"github.com/sirupsen/logrus"
)

// Engine applies the deposit and withdrawal policies to the books resolved
// through a BookFinder. Ledger types are not safe for concurrent use; the
// Engine serialises every call so it can sit behind a concurrent transport.
type Engine struct {
	mu    sync.Mutex         // Serialises every operation
	books BookFinder         // Resolves user IDs to books
	clock func() time.Time   // Source of deposit timestamps
	log   logrus.FieldLogger // Policy event logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the source of deposit timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithLogger sets the logger used for policy events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine returns an Engine over books.
func NewEngine(books BookFinder, opts ...Option) *Engine {
	e := &Engine{books: books, clock: time.Now, log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time { return e.clock() }

// Deposit credits amount to the account addressed by h.
func (e *Engine) Deposit(h Handle, amount int64, note string) (DepositResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	acct, goal, err := e.resolve(h) // Find the target account
	if err != nil {
		return DepositResult{}, err
	}
	now := e.clock() // Deposit timestamp
	if goal == nil {
		return depositMain(acct, amount, note, now) // Main balance has no cap
	}
	res, err := depositGoal(goal, amount, note, now) // Clamp to the target
	if err != nil {
		return res, err
	}
	if res.Completed {
		// Log goal completion
		e.log.WithFields(logrus.Fields{
			"user_id": h.UserID,      // User ID
			"goal":    goal.Name(),   // Goal name
			"target":  goal.Target(), // Target amount
			"excess":  res.Excess,    // Amount above the target
		}).Info("Goal completed")
	}
	return res, nil
}

// Withdraw debits the account addressed by h, evaluating the cooldown
// against now.
func (e *Engine) Withdraw(h Handle, amount int64, note string, now time.Time) (WithdrawResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	acct, goal, err := e.resolve(h) // Find the source account
	if err != nil {
		return WithdrawResult{}, err
	}
	var res WithdrawResult
	if goal == nil {
		res, err = withdrawMain(acct, amount, note, now) // Capped to the balance
	} else {
		res, err = withdrawGoal(goal, amount, note, now) // Fixed share of the goal
	}
	if err != nil {
		var te *ThrottledError
		if errors.As(err, &te) {
			// Log throttled withdrawal
			e.log.WithFields(logrus.Fields{
				"user_id":          h.UserID,          // User ID
				"source":           h.String(),        // Account
				"retry_after_days": te.RetryAfterDays, // Days left in the window
			}).Debug("Withdrawal throttled")
		}
		return res, err
	}
	return res, nil
}

// CreateGoal registers a new goal for userID.
func (e *Engine) CreateGoal(userID, name string, target int64) (domain.GoalView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, err := e.book(userID)
	if err != nil {
		return domain.GoalView{}, err
	}
	g, err := book.goals.Create(name, target)
	if err != nil {
		return domain.GoalView{}, err
	}
	return g.View(), nil
}

// DeleteGoal removes a goal of userID, discarding its balance and history.
func (e *Engine) DeleteGoal(userID, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, err := e.book(userID)
	if err != nil {
		return err
	}
	return book.goals.Delete(name)
}

// Goals lists the goals of userID in registry order.
func (e *Engine) Goals(userID string) ([]domain.GoalView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, err := e.book(userID)
	if err != nil {
		return nil, err
	}
	return goalViews(book.goals.List()), nil
}

// ActiveGoals lists the goals of userID that still accept deposits.
func (e *Engine) ActiveGoals(userID string) ([]domain.GoalView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, err := e.book(userID)
	if err != nil {
		return nil, err
	}
	return goalViews(book.goals.Active()), nil
}

// Sources lists the accounts a user can pick for a deposit or withdrawal.
type Sources struct {
	Main  domain.AccountView `json:"main"`
	Goals []domain.GoalView  `json:"goals"`
	// FallbackToMain is set when no goal is active, so only main is offered.
	FallbackToMain bool `json:"fallback_to_main"`
}

// Sources returns the main account and the active goals of userID.
func (e *Engine) Sources(userID string) (Sources, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, err := e.book(userID)
	if err != nil {
		return Sources{}, err
	}
	active := goalViews(book.goals.Active())
	return Sources{
		Main:           book.main.View(),
		Goals:          active,
		FallbackToMain: len(active) == 0,
	}, nil
}

// Summary returns the balances of userID.
func (e *Engine) Summary(userID string) (domain.Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, err := e.book(userID)
	if err != nil {
		return domain.Summary{}, err
	}
	return book.Summary(), nil
}

// History returns a copy of the log of the account addressed by h.
func (e *Engine) History(h Handle) ([]domain.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, err := e.book(h.UserID)
	if err != nil {
		return nil, err
	}
	return book.History(h)
}

// Inspect runs fn with the book of userID while holding the engine lock.
// fn must only read from the book. Work done inside fn, such as filling a
// cache, is ordered before any later mutation of the book.
func (e *Engine) Inspect(userID string, fn func(*Book) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	book, err := e.book(userID)
	if err != nil {
		return err
	}
	return fn(book)
}

func (e *Engine) book(userID string) (*Book, error) {
	book, err := e.books.Book(userID)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}
	return book, nil
}

func (e *Engine) resolve(h Handle) (*Account, *Goal, error) {
	book, err := e.book(h.UserID)
	if err != nil {
		return nil, nil, err
	}
	return book.resolve(h)
}

func goalViews(goals []*Goal) []domain.GoalView {
	out := make([]domain.GoalView, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.View())
	}
	return out
}
