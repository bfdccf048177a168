package robinhood

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/username/wheeltracker/src/models"
	"github.com/username/wheeltracker/src/utils"
)

// Column layout of a Robinhood activity export. Unlike E*TRADE the quantity
// has a dedicated column; the description only carries the contract terms.
const (
	colActivityDate = 0
	colDescription  = 4
	colTransCode    = 5
	colQuantity     = 6
	colAmount       = 7
	colAmountSign   = 8
	minColumns      = 9
)

// optionDescRe matches "<symbol> <MM/DD/YYYY> <Call|Put> $<strike>".
var optionDescRe = regexp.MustCompile(`(?P<symbol>\w+) (?P<exp>\d{1,2}/\d{1,2}/\d{4}) (?P<type>Call|Put) \$(?P<strike>[\d.]+)`)

// actionTable maps (transaction code, option type) to the canonical action.
// BTC/STC close positions but reuse the four open tags; OASGN is an
// assignment regardless of the option type.
var actionTable = map[string]map[string]models.Action{
	"BTO":   {"Call": models.BuyCall, "Put": models.BuyPut},
	"STO":   {"Call": models.SellCall, "Put": models.SellPut},
	"BTC":   {"Call": models.BuyCall, "Put": models.BuyPut},
	"STC":   {"Call": models.SellCall, "Put": models.SellPut},
	"OASGN": {"Call": models.Assigned, "Put": models.Assigned},
}

const dateLayout = "1/2/2006"

type RobinhoodParser struct {
	strict bool
	now    func() time.Time
}

func NewParser(strict bool, now func() time.Time) *RobinhoodParser {
	return &RobinhoodParser{strict: strict, now: now}
}

// Parse reads a Robinhood CSV export and converts recognizable option rows
// into trades. Rows whose description does not carry the contract terms
// (stock orders, dividends, transfers) are dropped.
func (p *RobinhoodParser) Parse(file io.Reader) ([]models.OptionTrade, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read all CSV records: %w", err)
	}

	var trades []models.OptionTrade
	for _, record := range records {
		if len(record) < minColumns {
			continue
		}

		desc := strings.TrimSpace(record[colDescription])
		matches := optionDescRe.FindStringSubmatch(desc)
		if matches == nil {
			continue
		}
		symbol := matches[optionDescRe.SubexpIndex("symbol")]
		expStr := matches[optionDescRe.SubexpIndex("exp")]
		optionType := matches[optionDescRe.SubexpIndex("type")]
		strike, _ := strconv.ParseFloat(matches[optionDescRe.SubexpIndex("strike")], 64)

		code := strings.TrimSpace(record[colTransCode])
		byType, ok := actionTable[code]
		if !ok {
			continue
		}
		action := byType[optionType]

		qty, _ := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(record[colQuantity]), ",", ""))
		if qty == 0 {
			log.Printf("Skipping robinhood row with zero quantity: %s", desc)
			continue
		}

		expiration, ok := p.parseDate(expStr)
		if !ok {
			continue
		}
		dateOfAction, ok := p.parseDate(strings.TrimSpace(record[colActivityDate]))
		if !ok {
			continue
		}

		amount := parseSignedAmount(record[colAmount], record[colAmountSign])

		trades = append(trades, models.OptionTrade{
			Symbol: symbol,
			// Default campaign; the import entry point overrides it.
			Campaign: fmt.Sprintf("%s_%s", symbol, utils.FormatDate(expiration)),
			Action:   action,
			Strike:   strike,
			// Delta is not present in Robinhood exports.
			Delta:          0,
			ExpirationDate: expiration,
			DateOfAction:   dateOfAction,
			NumberOfShares: qty * 100,
			Credit:         math.Abs(amount) / (float64(qty) * 100),
		})
	}

	return trades, nil
}

func (p *RobinhoodParser) parseDate(value string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, value)
	if err == nil {
		return utils.TruncateToDay(t), true
	}
	if p.strict {
		log.Printf("Skipping robinhood row due to invalid date %q: %v", value, err)
		return time.Time{}, false
	}
	log.Printf("Defaulting invalid robinhood date %q to today: %v", value, err)
	return utils.TruncateToDay(p.now()), true
}

// parseSignedAmount reads the dollar amount column; the adjacent column's
// parenthesized rendering carries the sign, matching the export format.
func parseSignedAmount(raw, signColumn string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", "(", "", ")", "").Replace(raw)
	amount, _ := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if strings.Contains(signColumn, "(") {
		amount = -amount
	}
	return amount
}
