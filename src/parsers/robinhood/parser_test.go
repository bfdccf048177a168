package robinhood

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/wheeltracker/src/models"
)

const header = `Activity Date,Process Date,Settle Date,Instrument,Description,Trans Code,Quantity,Amount,Amount Display` + "\n"

func fixedNow() time.Time {
	return time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC)
}

func TestParseSellToOpenRow(t *testing.T) {
	csvData := header +
		`"7/3/2025","7/3/2025","7/7/2025","NVTS","NVTS 7/18/2025 Put $6.50","STO","15","$270.00","$270.00"` + "\n"

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.Equal(t, "NVTS", trade.Symbol)
	assert.Equal(t, models.SellPut, trade.Action)
	assert.InDelta(t, 6.5, trade.Strike, 1e-9)
	assert.Equal(t, time.Date(2025, time.July, 18, 0, 0, 0, 0, time.UTC), trade.ExpirationDate)
	assert.Equal(t, time.Date(2025, time.July, 3, 0, 0, 0, 0, time.UTC), trade.DateOfAction)
	assert.Equal(t, 1500, trade.NumberOfShares)
	assert.InDelta(t, 0.18, trade.Credit, 1e-9)
	assert.Equal(t, "NVTS_2025-07-18", trade.Campaign)
}

func TestParseTransCodeMapping(t *testing.T) {
	testCases := []struct {
		code       string
		optionType string
		expected   models.Action
	}{
		{"BTO", "Call", models.BuyCall},
		{"BTO", "Put", models.BuyPut},
		{"STO", "Call", models.SellCall},
		{"STO", "Put", models.SellPut},
		{"BTC", "Call", models.BuyCall},
		{"BTC", "Put", models.BuyPut},
		{"STC", "Call", models.SellCall},
		{"STC", "Put", models.SellPut},
		// Assignment is independent of the option type.
		{"OASGN", "Call", models.Assigned},
		{"OASGN", "Put", models.Assigned},
	}

	p := NewParser(false, fixedNow)
	for _, tc := range testCases {
		t.Run(tc.code+"_"+tc.optionType, func(t *testing.T) {
			csvData := header +
				`"7/3/2025","7/3/2025","7/7/2025","RKLB","RKLB 8/15/2025 ` + tc.optionType + ` $30.00","` + tc.code + `","2","$250.00","$250.00"` + "\n"
			trades, err := p.Parse(strings.NewReader(csvData))
			require.NoError(t, err)
			require.Len(t, trades, 1)
			assert.Equal(t, tc.expected, trades[0].Action)
		})
	}
}

func TestParseSkipsUnrecognizedRows(t *testing.T) {
	csvData := header +
		`"7/3/2025","7/3/2025","7/7/2025","TSLA","TSLA market buy","Buy","10","$2500.00","($2500.00)"` + "\n" +
		`"7/3/2025","7/3/2025","7/7/2025","AAPL","AAPL dividend","CDIV","","$12.00","$12.00"` + "\n" +
		`"7/3/2025","7/3/2025","7/7/2025","RKLB","RKLB 8/15/2025 Call $30.00","XYZ","2","$250.00","$250.00"` + "\n"

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestParseParenthesizedAmountKeepsUnsignedCredit(t *testing.T) {
	csvData := header +
		`"7/10/2025","7/10/2025","7/14/2025","RKLB","RKLB 8/15/2025 Put $30.00","BTC","2","($36.00)","($36.00)"` + "\n"

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, trades, 1)

	trade := trades[0]
	assert.Equal(t, models.BuyPut, trade.Action)
	assert.Equal(t, 200, trade.NumberOfShares)
	assert.InDelta(t, 0.18, trade.Credit, 1e-9)
}

func TestParseQuantityWithThousandsSeparator(t *testing.T) {
	csvData := header +
		`"7/3/2025","7/3/2025","7/7/2025","NVTS","NVTS 7/18/2025 Put $6.50","STO","1,000","$18000.00","$18000.00"` + "\n"

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, 100000, trades[0].NumberOfShares)
	assert.InDelta(t, 0.18, trades[0].Credit, 1e-9)
}

func TestParseInvalidDateStrictSkipsRow(t *testing.T) {
	csvData := header +
		`"garbage","7/3/2025","7/7/2025","NVTS","NVTS 7/18/2025 Put $6.50","STO","15","$270.00","$270.00"` + "\n"

	p := NewParser(true, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestParseInvalidDateLenientDefaultsToToday(t *testing.T) {
	csvData := header +
		`"garbage","7/3/2025","7/7/2025","NVTS","NVTS 7/18/2025 Put $6.50","STO","15","$270.00","$270.00"` + "\n"

	p := NewParser(false, fixedNow)
	trades, err := p.Parse(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC), trades[0].DateOfAction)
}
