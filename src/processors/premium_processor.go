package processors

import (
	"time"

	"github.com/username/wheeltracker/src/models"
	"github.com/username/wheeltracker/src/utils"
)

// ContractKey identifies one option line: every trade on the same
// underlying, strike and expiry belongs to the same group regardless of
// campaign or date of action. The expiration is held as a formatted date so
// the key stays comparable.
type ContractKey struct {
	Symbol     string
	Strike     float64
	Expiration string
}

func ContractKeyFor(t models.OptionTrade) ContractKey {
	return ContractKey{
		Symbol:     t.Symbol,
		Strike:     t.Strike,
		Expiration: utils.FormatDate(t.ExpirationDate),
	}
}

type premiumProcessorImpl struct{}

func NewPremiumProcessor() PremiumProcessor {
	return &premiumProcessorImpl{}
}

// TotalNetPremium implements the PremiumProcessor interface. Group iteration
// order does not affect the result; summation is commutative.
func (p *premiumProcessorImpl) TotalNetPremium(trades []models.OptionTrade) float64 {
	groups := groupTradesByContract(trades)

	var totalNetPremium float64
	for _, contractTrades := range groups {
		var sold, bought float64
		for _, t := range contractTrades {
			premium := t.Credit * float64(t.NumberOfShares)
			switch t.Action {
			case models.SellPut, models.SellCall:
				sold += premium
			case models.BuyPut, models.BuyCall:
				bought += premium
			case models.Exercised, models.Assigned:
				// Lifecycle events, not premium transactions.
			}
		}
		totalNetPremium += sold - bought
	}
	return totalNetPremium
}

// WeeklyPremium implements the PremiumProcessor interface. The window is the
// inclusive 7-day span starting on the Monday of today's ISO week.
func (p *premiumProcessorImpl) WeeklyPremium(trades []models.OptionTrade, today time.Time) float64 {
	weekStart := utils.WeekStart(today)
	weekEnd := weekStart.AddDate(0, 0, 6)

	var total float64
	for _, t := range trades {
		expiry := utils.TruncateToDay(t.ExpirationDate)
		if expiry.Before(weekStart) || expiry.After(weekEnd) {
			continue
		}
		total += t.Credit * float64(t.NumberOfShares)
	}
	return total
}

func groupTradesByContract(trades []models.OptionTrade) map[ContractKey][]models.OptionTrade {
	grouped := make(map[ContractKey][]models.OptionTrade)
	for _, t := range trades {
		key := ContractKeyFor(t)
		grouped[key] = append(grouped[key], t)
	}
	return grouped
}
