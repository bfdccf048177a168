package models

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/username/wheeltracker/src/utils"
)

// Action is the closed set of option transaction kinds. Values are stored
// verbatim in the database.
type Action string

const (
	BuyPut    Action = "BuyPut"
	SellPut   Action = "SellPut"
	BuyCall   Action = "BuyCall"
	SellCall  Action = "SellCall"
	Exercised Action = "Exercised"
	Assigned  Action = "Assigned"
)

// ParseAction validates an action string coming from the database or an API
// request.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case BuyPut, SellPut, BuyCall, SellCall, Exercised, Assigned:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action: %q", s)
}

// OptionTrade is the canonical record for one option transaction.
//
// NumberOfShares is always contracts x 100, computed at ingestion.
// Credit holds the unsigned per-share premium magnitude; direction comes
// from Action alone.
type OptionTrade struct {
	ID             int64     `json:"id,omitempty"`
	Symbol         string    `json:"symbol"`
	Campaign       string    `json:"campaign"`
	Action         Action    `json:"action"`
	Strike         float64   `json:"strike"`
	Delta          float64   `json:"delta"`
	ExpirationDate time.Time `json:"expiration_date"`
	DateOfAction   time.Time `json:"date_of_action"`
	NumberOfShares int       `json:"number_of_shares"`
	Credit         float64   `json:"credit"`
}

// HashID derives a stable identity for duplicate detection on re-import.
func (t *OptionTrade) HashID() string {
	input := fmt.Sprintf("%s|%s|%s|%.4f|%s|%s|%d|%.6f",
		t.Symbol, t.Campaign, t.Action, t.Strike,
		utils.FormatDate(t.ExpirationDate), utils.FormatDate(t.DateOfAction),
		t.NumberOfShares, t.Credit)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

const tradeColumns = `id, symbol, campaign, action, strike, delta, expiration_date, date_of_action, number_of_shares, credit`

// Insert stores the trade and fills in its ID.
func (t *OptionTrade) Insert(db *sql.DB) error {
	res, err := db.Exec(`INSERT INTO option_trades (symbol, campaign, action, strike, delta, expiration_date, date_of_action, number_of_shares, credit, hash_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Symbol, t.Campaign, string(t.Action), t.Strike, t.Delta,
		utils.FormatDate(t.ExpirationDate), utils.FormatDate(t.DateOfAction),
		t.NumberOfShares, t.Credit, t.HashID())
	if err != nil {
		return fmt.Errorf("error inserting trade for %s: %w", t.Symbol, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading inserted trade id: %w", err)
	}
	t.ID = id
	return nil
}

// Update replaces the persisted record matching the trade's ID.
func (t *OptionTrade) Update(db *sql.DB) error {
	res, err := db.Exec(`UPDATE option_trades SET symbol = ?, campaign = ?, action = ?, strike = ?, delta = ?, expiration_date = ?, date_of_action = ?, number_of_shares = ?, credit = ?, hash_id = ? WHERE id = ?`,
		t.Symbol, t.Campaign, string(t.Action), t.Strike, t.Delta,
		utils.FormatDate(t.ExpirationDate), utils.FormatDate(t.DateOfAction),
		t.NumberOfShares, t.Credit, t.HashID(), t.ID)
	if err != nil {
		return fmt.Errorf("error updating trade %d: %w", t.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking updated rows for trade %d: %w", t.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("no trade found with id %d", t.ID)
	}
	return nil
}

// FetchAllTrades returns every stored trade. No ordering is guaranteed;
// callers sort or filter as needed.
func FetchAllTrades(db *sql.DB) ([]OptionTrade, error) {
	rows, err := db.Query(`SELECT ` + tradeColumns + ` FROM option_trades`)
	if err != nil {
		return nil, fmt.Errorf("error querying trades: %w", err)
	}
	defer rows.Close()
	return scanTrades(rows)
}

// FetchCampaignTrades returns the trades belonging to one campaign, matched
// on exact (campaign name, symbol) equality.
func FetchCampaignTrades(db *sql.DB, campaign, symbol string) ([]OptionTrade, error) {
	rows, err := db.Query(`SELECT `+tradeColumns+` FROM option_trades WHERE campaign = ? AND symbol = ?`, campaign, symbol)
	if err != nil {
		return nil, fmt.Errorf("error querying trades for campaign %s: %w", campaign, err)
	}
	defer rows.Close()
	return scanTrades(rows)
}

func scanTrades(rows *sql.Rows) ([]OptionTrade, error) {
	var trades []OptionTrade
	for rows.Next() {
		var t OptionTrade
		var action, expiration, dateOfAction string
		if err := rows.Scan(&t.ID, &t.Symbol, &t.Campaign, &action, &t.Strike, &t.Delta, &expiration, &dateOfAction, &t.NumberOfShares, &t.Credit); err != nil {
			return nil, fmt.Errorf("error scanning trade row: %w", err)
		}
		parsed, err := ParseAction(action)
		if err != nil {
			// Rows written before the enum tightened; keep the legacy fallback.
			parsed = SellPut
		}
		t.Action = parsed
		t.ExpirationDate = utils.ParseDate(expiration)
		t.DateOfAction = utils.ParseDate(dateOfAction)
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over trade rows: %w", err)
	}
	return trades, nil
}
