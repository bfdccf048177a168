package models

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/username/wheeltracker/src/utils"
)

// Campaign is a named options-selling thesis against one underlying.
type Campaign struct {
	ID              int64     `json:"id,omitempty"`
	Name            string    `json:"name"`
	Symbol          string    `json:"symbol"`
	TargetExitPrice *float64  `json:"target_exit_price,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Insert stores the campaign. Name collisions surface as a database error.
func (c *Campaign) Insert(db *sql.DB) error {
	res, err := db.Exec(`INSERT INTO campaigns (name, symbol, created_at, target_exit_price) VALUES (?, ?, ?, ?)`,
		c.Name, c.Symbol, utils.FormatDate(c.CreatedAt), c.TargetExitPrice)
	if err != nil {
		return fmt.Errorf("error inserting campaign %s: %w", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("error reading inserted campaign id: %w", err)
	}
	c.ID = id
	return nil
}

// EnsureCampaign inserts the campaign if no campaign with that name exists
// yet. Used by the import flow, which must not fail on re-import.
func EnsureCampaign(db *sql.DB, name, symbol string, createdAt time.Time) error {
	_, err := db.Exec(`INSERT OR IGNORE INTO campaigns (name, symbol, created_at, target_exit_price) VALUES (?, ?, ?, NULL)`,
		name, symbol, utils.FormatDate(createdAt))
	if err != nil {
		return fmt.Errorf("error ensuring campaign %s: %w", name, err)
	}
	return nil
}

// FetchAllCampaigns returns every campaign, newest first for display.
func FetchAllCampaigns(db *sql.DB) ([]Campaign, error) {
	rows, err := db.Query(`SELECT id, name, symbol, created_at, target_exit_price FROM campaigns ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []Campaign
	for rows.Next() {
		var c Campaign
		var createdAt string
		var target sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.Name, &c.Symbol, &createdAt, &target); err != nil {
			return nil, fmt.Errorf("error scanning campaign row: %w", err)
		}
		c.CreatedAt = utils.ParseDate(createdAt)
		if target.Valid {
			v := target.Float64
			c.TargetExitPrice = &v
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over campaign rows: %w", err)
	}
	return campaigns, nil
}

// FetchCampaignByName looks a campaign up by its unique name.
// Returns sql.ErrNoRows when absent.
func FetchCampaignByName(db *sql.DB, name string) (*Campaign, error) {
	var c Campaign
	var createdAt string
	var target sql.NullFloat64
	err := db.QueryRow(`SELECT id, name, symbol, created_at, target_exit_price FROM campaigns WHERE name = ?`, name).
		Scan(&c.ID, &c.Name, &c.Symbol, &createdAt, &target)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = utils.ParseDate(createdAt)
	if target.Valid {
		v := target.Float64
		c.TargetExitPrice = &v
	}
	return &c, nil
}
