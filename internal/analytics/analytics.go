// Package analytics turns a user's transaction history into a
// withdrawn/deposited ratio and a qualitative status.
package analytics

import "savings_ledger/internal/ledger"

// Status is the qualitative label derived from the ratio.
type Status string

const (
	StatusNoData       Status = "no_data"
	StatusHealthy      Status = "healthy"
	StatusStable       Status = "stable"
	StatusOverspending Status = "overspending"
)

// Thresholds of the status bands, in percent. Both bounds belong to the
// stable band.
const (
	StableFrom = 30.0
	StableTo   = 60.0
)

// Report is the result of Ratio.
type Report struct {
	TotalDeposited int64   `json:"total_deposited"`
	TotalWithdrawn int64   `json:"total_withdrawn"`
	RatioPercent   float64 `json:"ratio_percent"`
	Status         Status  `json:"status"`
	// NoData is a valid empty state: nothing has been deposited yet.
	NoData bool `json:"no_data"`
}

// Ratio sums the main log and the logs of every goal still registered.
// Deleted goals take their history with them.
func Ratio(book *ledger.Book) Report {
	var r Report
	add := func(dep, wd int64) {
		r.TotalDeposited += dep
		r.TotalWithdrawn += wd
	}
	add(book.Main().Totals())
	for _, g := range book.Goals().List() {
		add(g.Totals())
	}
	if r.TotalDeposited == 0 {
		r.NoData = true
		r.Status = StatusNoData
		return r
	}
	r.RatioPercent = float64(r.TotalWithdrawn) / float64(r.TotalDeposited) * 100
	r.Status = Classify(r.RatioPercent)
	return r
}

// Classify maps a ratio in percent to its status.
func Classify(ratio float64) Status {
	switch {
	case ratio < StableFrom:
		return StatusHealthy
	case ratio <= StableTo:
		return StatusStable
	default:
		return StatusOverspending
	}
}
