package ledger

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors. Every one of them is recoverable: the caller re-prompts or
// abandons the single operation.
var (
	ErrInvalidAmount             = errors.New("amount must be a positive integer")
	ErrEmptyName                 = errors.New("goal name must not be empty")
	ErrDuplicateName             = errors.New("a goal with that name already exists")
	ErrNotFound                  = errors.New("not found")
	ErrGoalClosed                = errors.New("goal already completed, deposits are closed")
	ErrEmptyBalance              = errors.New("goal balance is empty")
	ErrInsufficientForWithdrawal = errors.New("goal balance too small for a 30% withdrawal")
	ErrThrottled                 = errors.New("only one withdrawal is allowed every 365 days")
)

// ThrottledError reports a withdrawal attempted inside the cooldown window.
// It matches ErrThrottled with errors.Is.
type ThrottledError struct {
	RetryAfterDays int
	NextAllowedAt  time.Time
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("%v: retry in %d days (%s)", ErrThrottled, e.RetryAfterDays, e.NextAllowedAt.Format("02 January 2006"))
}

func (e *ThrottledError) Is(target error) bool { return target == ErrThrottled }

// GoalNotFoundError is returned for lookups of a goal name that is not
// registered. Suggestion holds the closest registered name, if any.
type GoalNotFoundError struct {
	Name       string
	Suggestion string
}

func (e *GoalNotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("goal %q %v, did you mean %q?", e.Name, ErrNotFound, e.Suggestion)
	}
	return fmt.Sprintf("goal %q %v", e.Name, ErrNotFound)
}

func (e *GoalNotFoundError) Is(target error) bool { return target == ErrNotFound }
