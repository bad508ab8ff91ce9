package ledger

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how different a suggested goal name may be.
const maxSuggestDistance = 3

// Registry owns the named goals of one user, in insertion order.
// Names are unique case-insensitively.
type Registry struct {
	goals []*Goal
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Create registers a new active goal with a zero balance.
func (r *Registry) Create(name string, target int64) (*Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if target <= 0 {
		return nil, ErrInvalidAmount
	}
	if r.index(name) >= 0 {
		return nil, ErrDuplicateName
	}
	g := newGoal(name, target)
	r.goals = append(r.goals, g)
	return g, nil
}

// Delete removes the goal together with its balance and history.
// Nothing is transferred back to the main account.
func (r *Registry) Delete(name string) error {
	i := r.index(strings.TrimSpace(name))
	if i < 0 {
		return r.notFound(name)
	}
	r.goals = append(r.goals[:i], r.goals[i+1:]...)
	return nil
}

// Get looks a goal up by name, ignoring case.
func (r *Registry) Get(name string) (*Goal, error) {
	i := r.index(strings.TrimSpace(name))
	if i < 0 {
		return nil, r.notFound(name)
	}
	return r.goals[i], nil
}

// List returns every goal in insertion order.
func (r *Registry) List() []*Goal {
	out := make([]*Goal, len(r.goals))
	copy(out, r.goals)
	return out
}

// Active returns the goals still accepting deposits, in insertion order.
func (r *Registry) Active() []*Goal {
	var out []*Goal
	for _, g := range r.goals {
		if !g.Completed() {
			out = append(out, g)
		}
	}
	return out
}

// Len is the number of registered goals.
func (r *Registry) Len() int { return len(r.goals) }

func (r *Registry) index(name string) int {
	for i, g := range r.goals {
		if strings.EqualFold(g.name, name) {
			return i
		}
	}
	return -1
}

func (r *Registry) notFound(name string) error {
	return &GoalNotFoundError{Name: name, Suggestion: r.suggest(name)}
}

// suggest returns the registered name closest to name, or "" when nothing
// is close enough to be a plausible typo.
func (r *Registry) suggest(name string) string {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, g := range r.goals {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(g.name))
		if d < bestDist && d < len([]rune(needle)) {
			best, bestDist = g.name, d
		}
	}
	return best
}
