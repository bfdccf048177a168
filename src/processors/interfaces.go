package processors

import (
	"time"

	"github.com/username/wheeltracker/src/models"
)

// PremiumProcessor computes portfolio-wide premium aggregates over a flat
// trade collection. All methods are pure; the caller supplies the trades and
// the current date.
type PremiumProcessor interface {
	// TotalNetPremium nets sold against bought premium per contract group
	// and sums across groups. Exercised/Assigned trades contribute zero.
	TotalNetPremium(trades []models.OptionTrade) float64
	// WeeklyPremium sums credit x shares for every trade expiring within
	// the Monday-to-Sunday week containing today.
	WeeklyPremium(trades []models.OptionTrade, today time.Time) float64
}

// SummaryProcessor derives one campaign's dashboard values from its trade
// subset, pre-filtered by the caller on (campaign name, symbol).
type SummaryProcessor interface {
	Summarize(trades []models.OptionTrade, targetExitPrice *float64, today time.Time) models.CampaignSummary
}
