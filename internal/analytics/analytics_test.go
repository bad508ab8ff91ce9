package analytics

import (
	"testing"
	"time"

	"savings_ledger/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oneBook struct{ b *ledger.Book }

func (o oneBook) Book(string) (*ledger.Book, error) { return o.b, nil }

func TestClassify(t *testing.T) {
	cases := []struct {
		ratio float64
		want  Status
	}{
		{0, StatusHealthy},
		{20, StatusHealthy},
		{29.99, StatusHealthy},
		{30, StatusStable},
		{40, StatusStable},
		{60, StatusStable},
		{60.01, StatusOverspending},
		{70, StatusOverspending},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.ratio), "ratio %v", tc.ratio)
	}
}

func TestRatioEmptyBook(t *testing.T) {
	r := Ratio(ledger.NewBook())
	assert.True(t, r.NoData)
	assert.Equal(t, StatusNoData, r.Status)
	assert.Zero(t, r.RatioPercent)
}

func TestRatioAcrossMainAndGoals(t *testing.T) {
	cases := []struct {
		withdraw int64
		ratio    float64
		status   Status
	}{
		{400, 40, StatusStable},
		{700, 70, StatusOverspending},
		{200, 20, StatusHealthy},
	}
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, tc := range cases {
		book := ledger.NewBook()
		e := ledger.NewEngine(oneBook{book})
		_, err := e.CreateGoal("u", "Trip", 10_000)
		require.NoError(t, err)
		_, err = e.Deposit(ledger.Main("u"), 700, "")
		require.NoError(t, err)
		_, err = e.Deposit(ledger.GoalOf("u", "Trip"), 300, "")
		require.NoError(t, err)
		_, err = e.Withdraw(ledger.Main("u"), tc.withdraw, "", now)
		require.NoError(t, err)

		r := Ratio(book)
		assert.Equal(t, int64(1000), r.TotalDeposited)
		assert.Equal(t, tc.withdraw, r.TotalWithdrawn)
		assert.InDelta(t, tc.ratio, r.RatioPercent, 1e-9)
		assert.Equal(t, tc.status, r.Status)
	}
}

func TestRatioForgetsDeletedGoals(t *testing.T) {
	book := ledger.NewBook()
	e := ledger.NewEngine(oneBook{book})
	_, err := e.CreateGoal("u", "Trip", 10_000)
	require.NoError(t, err)
	_, err = e.Deposit(ledger.GoalOf("u", "Trip"), 400, "")
	require.NoError(t, err)
	require.NoError(t, e.DeleteGoal("u", "Trip"))

	assert.True(t, Ratio(book).NoData)
}
