package etrade

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/wheeltracker/src/models"
)

const header = `TransactionDate,TransactionType,SecurityType,Symbol,Description,Quantity,Price,Amount` + "\n"

func fixedNow() time.Time {
	return time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
}

func TestParseSellPutRow(t *testing.T) {
	csvData := header +
		`"07/03/25 10:00:00 AM","Sold","","","15 Put NVTS 07/03/25 6.500 @ $0.18","","","$270.00"` + "\n"

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.Equal(t, "NVTS", trade.Symbol)
	assert.Equal(t, models.SellPut, trade.Action)
	assert.InDelta(t, 6.5, trade.Strike, 1e-9)
	assert.Equal(t, time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC), trade.ExpirationDate)
	assert.Equal(t, time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC), trade.DateOfAction)
	assert.Equal(t, 1500, trade.NumberOfShares)
	assert.InDelta(t, 0.18, trade.Credit, 1e-9)
}

func TestParseActionMapping(t *testing.T) {
	testCases := []struct {
		verb       string
		optionType string
		expected   models.Action
	}{
		{"Sold", "Put", models.SellPut},
		{"Sold", "Call", models.SellCall},
		{"Bought", "Put", models.BuyPut},
		{"Bought", "Call", models.BuyCall},
		{"Sold Short", "Put", models.SellPut},
		{"Sold Short", "Call", models.SellCall},
		{"Bought To Cover", "Put", models.BuyPut},
		{"Bought To Cover", "Call", models.BuyCall},
	}

	p := NewParser(false, fixedNow)
	for _, tc := range testCases {
		t.Run(tc.verb+"_"+tc.optionType, func(t *testing.T) {
			csvData := header +
				`"07/03/25 10:00:00 AM","` + tc.verb + `","","","2 ` + tc.optionType + ` RKLB 08/15/25 30.000 @ $1.25","","","$250.00"` + "\n"
			trades, err := p.Parse(strings.NewReader(csvData))
			require.NoError(t, err)
			require.Len(t, trades, 1)
			assert.Equal(t, tc.expected, trades[0].Action)
		})
	}
}

func TestParseSkipsNonOptionRows(t *testing.T) {
	csvData := header +
		`"07/03/25 10:00:00 AM","Bought","","","100 TSLA stock purchase","","","($25000.00)"` + "\n" +
		`"07/03/25 10:00:00 AM","Dividend","","","AAPL dividend payment","","","$12.00"` + "\n" +
		`"07/03/25 10:00:00 AM","Sold"` + "\n" // too few columns

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestParseParenthesizedAmountIsDebit(t *testing.T) {
	csvData := header +
		`"07/05/25 11:30:00 AM","Bought To Cover","","","2 Call RKLB 08/15/25 30.000 @ $1.25","","","($250.00)"` + "\n"

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.Equal(t, models.BuyCall, trade.Action)
	assert.Equal(t, 200, trade.NumberOfShares)
	// Credit is an unsigned magnitude; direction comes from the action.
	assert.InDelta(t, 1.25, trade.Credit, 1e-9)
}

func TestParseInvalidDateLenientDefaultsToToday(t *testing.T) {
	csvData := header +
		`"not a date","Sold","","","15 Put NVTS 07/03/25 6.500 @ $0.18","","","$270.00"` + "\n"

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), trades[0].DateOfAction)
}

func TestParseInvalidDateStrictSkipsRow(t *testing.T) {
	csvData := header +
		`"not a date","Sold","","","15 Put NVTS 07/03/25 6.500 @ $0.18","","","$270.00"` + "\n" +
		`"07/03/25 10:00:00 AM","Sold","","","15 Put NVTS 07/03/25 6.500 @ $0.19","","","$285.00"` + "\n"

	p := NewParser(true, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.InDelta(t, 0.19, trades[0].Credit, 1e-9)
}

func TestParseEmptyFileFails(t *testing.T) {
	p := NewParser(false, fixedNow)
	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
}
