package render

import (
	"strings"
	"testing"

	"savings_ledger/internal/analytics"
	"savings_ledger/internal/domain"

	"github.com/stretchr/testify/assert"
)

func sampleSummary() domain.Summary {
	return domain.Summary{
		Main: domain.AccountView{Balance: 1_250_000},
		Goals: []domain.GoalView{
			{Name: "Trip", Target: 1000, Balance: 250, Percent: 25, Status: domain.GoalActive},
			{Name: "Bike", Target: 500, Balance: 500, Percent: 100, Status: domain.GoalCompleted},
		},
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "--------------------", ProgressBar(0))
	assert.Equal(t, "#####---------------", ProgressBar(25))
	assert.Equal(t, "####################", ProgressBar(100))
	assert.Equal(t, "####################", ProgressBar(140))
	assert.Equal(t, "--------------------", ProgressBar(-3))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "Rp 0", Money(0))
	assert.Equal(t, "Rp 1,250,000", Money(1_250_000))
}

func TestPlainReport(t *testing.T) {
	rep := analytics.Report{TotalDeposited: 1000, TotalWithdrawn: 400, RatioPercent: 40, Status: analytics.StatusStable}
	out := Report(Plain{}, "Ana", sampleSummary(), rep)

	assert.Contains(t, out, "Main balance: Rp 1,250,000")
	assert.Contains(t, out, "Trip -> Rp 250 / Rp 1,000 (25%) Active")
	assert.Contains(t, out, "  Progress: [#####---------------]")
	assert.Contains(t, out, "Bike -> Rp 500 / Rp 500 (100%) Completed")
	assert.Contains(t, out, "Withdrawal ratio: 40.00%")
	assert.Contains(t, out, "Status: Fairly stable")
	assert.NotContains(t, out, "\x1b[")
}

func TestPlainReportNoData(t *testing.T) {
	out := Report(Plain{}, "Ana", domain.Summary{}, analytics.Report{NoData: true, Status: analytics.StatusNoData})
	assert.Contains(t, out, "(no goals yet)")
	assert.Contains(t, out, "No savings recorded yet.")
	assert.NotContains(t, out, "Status:")
}

func TestStyledReportIsDecorated(t *testing.T) {
	rep := analytics.Report{TotalDeposited: 1000, TotalWithdrawn: 700, RatioPercent: 70, Status: analytics.StatusOverspending}
	out := Report(ForStyle("color"), "Ana", sampleSummary(), rep)

	assert.Contains(t, out, "\x1b[")
	assert.Contains(t, out, "Overspending")
	// stripping escapes leaves the plain text intact
	plain := Report(ForStyle("plain"), "Ana", sampleSummary(), rep)
	assert.Equal(t, plain, stripANSI(out))
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
