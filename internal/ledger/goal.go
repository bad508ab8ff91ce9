package ledger

import "savings_ledger/internal/domain"

// Goal is a named, target-bounded account. Once completed it stays
// completed, even if a later withdrawal takes the balance under target.
type Goal struct {
	Account
	name   string
	target int64
	status domain.GoalStatus
}

func newGoal(name string, target int64) *Goal {
	return &Goal{name: name, target: target, status: domain.GoalActive}
}

func (g *Goal) Name() string              { return g.name }
func (g *Goal) Target() int64             { return g.target }
func (g *Goal) Status() domain.GoalStatus { return g.status }
func (g *Goal) Completed() bool           { return g.status == domain.GoalCompleted }

// Percent is floor(balance/target*100), capped at 100.
func (g *Goal) Percent() int {
	if g.target <= 0 {
		return 0
	}
	pct := int(float64(g.balance) / float64(g.target) * 100)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// View returns a read-only copy of the goal state.
func (g *Goal) View() domain.GoalView {
	return domain.GoalView{
		Name:             g.name,
		Target:           g.target,
		Balance:          g.balance,
		Status:           g.status,
		Percent:          g.Percent(),
		LastWithdrawalAt: g.lastWithdrawalCopy(),
		Transactions:     len(g.log),
	}
}
