package etrade

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

// Column layout of an E*TRADE transaction export. One column carries a
// free-text description embedding the option details; the verb and the
// signed dollar amount live in their own columns.
const (
	colDate        = 0
	colVerb        = 1
	colDescription = 4
	colAmount      = 7
	minColumns     = 8
)

// optionDescRe matches "<qty> <Put|Call> <symbol> <MM/DD/YY> <strike> @ $<price>".
// The trailing per-contract price is redundant with the amount column and is
// not captured.
var optionDescRe = regexp.MustCompile(`^(\d+)\s+(Put|Call)\s+(\S+)\s+(\d{1,2}/\d{1,2}/\d{2})\s+([\d.]+)\s+@`)

// actionTable maps (transaction verb, option type) to the canonical action.
// Opening-short and closing-to-cover verbs reuse the same four tags.
var actionTable = map[string]map[string]models.Action{
	"Sold":            {"Put": models.SellPut, "Call": models.SellCall},
	"Sold Short":      {"Put": models.SellPut, "Call": models.SellCall},
	"Bought":          {"Put": models.BuyPut, "Call": models.BuyCall},
	"Bought To Cover": {"Put": models.BuyPut, "Call": models.BuyCall},
}

const (
	actionDateLayout = "01/02/06 03:04:05 PM"
	expirationLayout = "1/2/06"
)

type ETradeParser struct {
	strict bool
	now    func() time.Time
}

func NewParser(strict bool, now func() time.Time) *ETradeParser {
	return &ETradeParser{strict: strict, now: now}
}

// Parse reads an E*TRADE CSV export and converts recognizable option rows
// into trades. Stock trades, dividends and transfers do not match the
// description pattern and are dropped.
func (p *ETradeParser) Parse(file io.Reader) ([]models.OptionTrade, error) {
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

		verb := strings.TrimSpace(record[colVerb])
		desc := strings.TrimSpace(record[colDescription])

		matches := optionDescRe.FindStringSubmatch(desc)
		if matches == nil {
			continue
		}

		byType, ok := actionTable[verb]
		if !ok {
			continue
		}
		action := byType[matches[2]]

		qty, _ := strconv.Atoi(matches[1])
		if qty == 0 {
			log.Printf("Skipping etrade row with zero quantity: %s", desc)
			continue
		}
		strike, _ := strconv.ParseFloat(matches[5], 64)

		expiration, ok := p.parseDate(matches[4], expirationLayout)
		if !ok {
			continue
		}
		dateOfAction, ok := p.parseDate(strings.TrimSpace(record[colDate]), actionDateLayout)
		if !ok {
			continue
		}

		amount := parseSignedAmount(record[colAmount])

		trades = append(trades, models.OptionTrade{
			Symbol:   matches[3],
			Campaign: matches[3], // default; the import entry point overrides it
			Action:   action,
			Strike:   strike,
			// Delta is not present in E*TRADE exports.
			Delta:          0,
			ExpirationDate: expiration,
			DateOfAction:   dateOfAction,
			NumberOfShares: qty * 100,
			Credit:         math.Abs(amount) / (float64(qty) * 100),
		})
	}

	return trades, nil
}

// parseDate applies the row-level failure policy: in lenient mode a bad date
// falls back to today, in strict mode the row is skipped.
func (p *ETradeParser) parseDate(value, layout string) (time.Time, bool) {
	t, err := time.Parse(layout, value)
	if err == nil {
		return utils.TruncateToDay(t), true
	}
	if p.strict {
		log.Printf("Skipping etrade row due to invalid date %q: %v", value, err)
		return time.Time{}, false
	}
	log.Printf("Defaulting invalid etrade date %q to today: %v", value, err)
	return utils.TruncateToDay(p.now()), true
}

// parseSignedAmount reads a dollar amount where parenthesized values mean
// negative, e.g. "($270.00)".
func parseSignedAmount(raw string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", "(", "", ")", "").Replace(raw)
	amount, _ := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if strings.Contains(raw, "(") {
		amount = -amount
	}
	return amount
}
