package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/username/wheeltracker/src/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestTotalNetPremium(t *testing.T) {
	p := NewPremiumProcessor()

	exp := day(2025, time.July, 18)
	trades := []models.OptionTrade{
		{Symbol: "NVTS", Strike: 6.5, ExpirationDate: exp, Action: models.SellPut, Credit: 0.18, NumberOfShares: 1500},
		{Symbol: "NVTS", Strike: 6.5, ExpirationDate: exp, Action: models.BuyPut, Credit: 0.05, NumberOfShares: 1500},
		{Symbol: "RKLB", Strike: 30, ExpirationDate: exp, Action: models.SellCall, Credit: 1.25, NumberOfShares: 200},
		// Lifecycle events never contribute premium.
		{Symbol: "NVTS", Strike: 6.5, ExpirationDate: exp, Action: models.Assigned, Credit: 6.5, NumberOfShares: 1500},
		{Symbol: "RKLB", Strike: 30, ExpirationDate: exp, Action: models.Exercised, Credit: 30, NumberOfShares: 200},
	}

	// NVTS line: 270 - 75 = 195. RKLB line: 250. Total 445.
	expected := 445.0
	assert.InDelta(t, expected, p.TotalNetPremium(trades), 1e-9)

	// Summation is commutative; reordering must not change the result.
	reversed := make([]models.OptionTrade, 0, len(trades))
	for i := len(trades) - 1; i >= 0; i-- {
		reversed = append(reversed, trades[i])
	}
	assert.InDelta(t, expected, p.TotalNetPremium(reversed), 1e-9)
}

func TestTotalNetPremiumSeparatesContractLines(t *testing.T) {
	p := NewPremiumProcessor()

	// Same symbol and strike but different expiries are distinct lines;
	// the net must still sum across both.
	trades := []models.OptionTrade{
		{Symbol: "HOOD", Strike: 80, ExpirationDate: day(2025, time.July, 11), Action: models.SellPut, Credit: 1.0, NumberOfShares: 100},
		{Symbol: "HOOD", Strike: 80, ExpirationDate: day(2025, time.July, 18), Action: models.BuyPut, Credit: 0.4, NumberOfShares: 100},
	}
	assert.InDelta(t, 60.0, p.TotalNetPremium(trades), 1e-9)
}

func TestTotalNetPremiumEmpty(t *testing.T) {
	p := NewPremiumProcessor()
	assert.Zero(t, p.TotalNetPremium(nil))
}

func TestWeeklyPremium(t *testing.T) {
	p := NewPremiumProcessor()
	monday := day(2025, time.July, 7) // a Monday

	testCases := []struct {
		name     string
		today    time.Time
		trades   []models.OptionTrade
		expected float64
	}{
		{
			name:  "expiring today on Monday is included",
			today: monday,
			trades: []models.OptionTrade{
				{ExpirationDate: monday, Credit: 0.5, NumberOfShares: 100},
			},
			expected: 50,
		},
		{
			name:  "expiring 8 days out is excluded",
			today: monday,
			trades: []models.OptionTrade{
				{ExpirationDate: monday.AddDate(0, 0, 8), Credit: 0.5, NumberOfShares: 100},
			},
			expected: 0,
		},
		{
			name:  "Sunday end of week is included",
			today: monday,
			trades: []models.OptionTrade{
				{ExpirationDate: monday.AddDate(0, 0, 6), Credit: 1.0, NumberOfShares: 200},
			},
			expected: 200,
		},
		{
			name:  "window reaches back to Monday from mid-week",
			today: day(2025, time.July, 10), // Thursday of the same week
			trades: []models.OptionTrade{
				{ExpirationDate: monday, Credit: 0.25, NumberOfShares: 400},
				{ExpirationDate: monday.AddDate(0, 0, -1), Credit: 9.99, NumberOfShares: 100}, // previous Sunday
			},
			expected: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, p.WeeklyPremium(tc.trades, tc.today), 1e-9)
		})
	}
}
