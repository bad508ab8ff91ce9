package domain

import "time" // Timestamps

// GoalStatus is the lifecycle state of a savings goal
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"    // Accepting deposits
	GoalCompleted GoalStatus = "completed" // Target reached, closed for deposits
)

// AccountView is a read-only copy of an account's state
type AccountView struct {
	Balance          int64      `json:"balance"`                      // Current balance
	LastWithdrawalAt *time.Time `json:"last_withdrawal_at,omitempty"` // Last successful withdrawal
	Transactions     int        `json:"transactions"`                 // Number of log entries
}

// GoalView is a read-only copy of a goal's state
type GoalView struct {
	Name             string     `json:"name"`                         // Display name
	Target           int64      `json:"target"`                       // Target amount
	Balance          int64      `json:"balance"`                      // Current balance
	Status           GoalStatus `json:"status"`                       // active or completed
	Percent          int        `json:"percent"`                      // Progress, capped at 100
	LastWithdrawalAt *time.Time `json:"last_withdrawal_at,omitempty"` // Last successful withdrawal
	Transactions     int        `json:"transactions"`                 // Number of log entries
}

// Summary is the balance overview of one user
type Summary struct {
	Main  AccountView `json:"main"`  // Main balance
	Goals []GoalView  `json:"goals"` // Goals in registry order
}
