package ledger

import (
	"time"

	"savings_ledger/internal/domain"
)

const (
	// ThrottleWindowDays is the cooldown between two withdrawals from the
	// same account.
	ThrottleWindowDays = 365

	// GoalWithdrawPercent is the share of a goal balance released by one
	// withdrawal.
	GoalWithdrawPercent = 30
)

const day = 24 * time.Hour

// DepositResult describes a successful deposit.
type DepositResult struct {
	Transaction domain.Transaction `json:"transaction"`
	Balance     int64              `json:"balance"`
	// Goal is the registered name of the credited goal, empty for main.
	Goal string `json:"goal,omitempty"`
	// Excess is the part of the deposit above the goal target that was not
	// credited. Always zero for the main account.
	Excess     int64             `json:"excess"`
	GoalStatus domain.GoalStatus `json:"goal_status,omitempty"`
	// Completed is set when this deposit brought the goal to its target.
	Completed bool `json:"completed"`
}

// WithdrawResult describes a successful withdrawal.
type WithdrawResult struct {
	Transaction domain.Transaction `json:"transaction"`
	Goal        string             `json:"goal,omitempty"`
	Requested   int64              `json:"requested"`
	Withdrawn   int64              `json:"withdrawn"`
	Balance     int64              `json:"balance"`
	// Partial is set when a main withdrawal was capped to the balance.
	Partial       bool      `json:"partial"`
	NextAllowedAt time.Time `json:"next_allowed_at"`
}

// checkThrottle fails when the last withdrawal is less than
// ThrottleWindowDays whole days before now. Exactly ThrottleWindowDays is
// allowed.
func checkThrottle(a *Account, now time.Time) error {
	last, ok := a.LastWithdrawalAt()
	if !ok {
		return nil
	}
	elapsed := int(now.Sub(last) / day)
	if elapsed < ThrottleWindowDays {
		return &ThrottledError{
			RetryAfterDays: ThrottleWindowDays - elapsed,
			NextAllowedAt:  nextAllowed(last),
		}
	}
	return nil
}

func nextAllowed(last time.Time) time.Time {
	return last.Add(ThrottleWindowDays * day)
}

// goalWithdrawable is floor(balance * 0.3). Integer arithmetic gives the
// same result as the float product for every non-negative balance in range.
func goalWithdrawable(balance int64) int64 {
	return balance * GoalWithdrawPercent / 100
}

func depositMain(a *Account, amount int64, note string, at time.Time) (DepositResult, error) {
	if err := validateAmount(amount); err != nil {
		return DepositResult{}, err
	}
	a.balance += amount
	tx := a.append(domain.KindDeposit, amount, note, at)
	return DepositResult{Transaction: tx, Balance: a.balance}, nil
}

func depositGoal(g *Goal, amount int64, note string, at time.Time) (DepositResult, error) {
	if err := validateAmount(amount); err != nil {
		return DepositResult{}, err
	}
	if g.Completed() {
		return DepositResult{}, ErrGoalClosed
	}
	res := DepositResult{Goal: g.Name()}
	g.balance += amount
	if g.balance >= g.target {
		res.Excess = g.balance - g.target
		g.balance = g.target
		g.status = domain.GoalCompleted
		res.Completed = true
	}
	// The log keeps the amount as deposited, clamping only touches the balance.
	res.Transaction = g.append(domain.KindDeposit, amount, note, at)
	res.Balance = g.balance
	res.GoalStatus = g.status
	return res, nil
}

// withdrawMain never overdraws: a request above the balance is fulfilled
// with whatever is available and flagged as partial.
func withdrawMain(a *Account, amount int64, note string, now time.Time) (WithdrawResult, error) {
	if err := validateAmount(amount); err != nil {
		return WithdrawResult{}, err
	}
	if err := checkThrottle(a, now); err != nil {
		return WithdrawResult{}, err
	}
	a.markWithdrawal(now)
	res := WithdrawResult{Requested: amount, Withdrawn: amount, NextAllowedAt: nextAllowed(now)}
	if amount > a.balance {
		res.Withdrawn = a.balance
		res.Partial = true
	}
	a.balance -= res.Withdrawn
	res.Transaction = a.append(domain.KindWithdrawal, res.Withdrawn, note, now)
	res.Balance = a.balance
	return res, nil
}

// withdrawGoal releases exactly GoalWithdrawPercent of the balance; the
// requested amount is advisory.
func withdrawGoal(g *Goal, amount int64, note string, now time.Time) (WithdrawResult, error) {
	if err := validateAmount(amount); err != nil {
		return WithdrawResult{}, err
	}
	if err := checkThrottle(&g.Account, now); err != nil {
		return WithdrawResult{}, err
	}
	if g.balance <= 0 {
		return WithdrawResult{}, ErrEmptyBalance
	}
	out := goalWithdrawable(g.balance)
	if out <= 0 {
		return WithdrawResult{}, ErrInsufficientForWithdrawal
	}
	g.balance -= out
	g.markWithdrawal(now)
	tx := g.append(domain.KindWithdrawal, out, note, now)
	return WithdrawResult{
		Transaction:   tx,
		Goal:          g.Name(),
		Requested:     amount,
		Withdrawn:     out,
		Balance:       g.balance,
		NextAllowedAt: nextAllowed(now),
	}, nil
}
