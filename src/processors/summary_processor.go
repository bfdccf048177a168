package processors

import (
	"time"

	"github.com/username/wheeltracker/src/models"
	"github.com/username/wheeltracker/src/utils"
)

type summaryProcessorImpl struct {
	premium PremiumProcessor
}

func NewSummaryProcessor(premium PremiumProcessor) SummaryProcessor {
	return &summaryProcessorImpl{premium: premium}
}

// Summarize implements the SummaryProcessor interface.
func (p *summaryProcessorImpl) Summarize(trades []models.OptionTrade, targetExitPrice *float64, today time.Time) models.CampaignSummary {
	var totalDebits, totalCredits float64
	var totalSharesAssigned int

	for _, t := range trades {
		premium := t.Credit * float64(t.NumberOfShares)
		switch t.Action {
		case models.Assigned, models.BuyCall, models.BuyPut:
			totalDebits += premium
		case models.SellPut, models.SellCall:
			totalCredits += premium
		}
		if t.Action == models.Assigned {
			totalSharesAssigned += t.NumberOfShares
		}
	}

	runningProfitLoss := totalCredits - totalDebits

	var breakEven *float64
	if lastPut := findLastOpenPut(trades); lastPut != nil {
		// The strike adjusted by the average premium collected per share.
		be := lastPut.Strike
		if lastPut.NumberOfShares > 0 {
			be -= runningProfitLoss / float64(lastPut.NumberOfShares)
		}
		breakEven = &be
	} else if totalSharesAssigned > 0 {
		be := (totalDebits - totalCredits) / float64(totalSharesAssigned)
		breakEven = &be
	}

	weeksRunning := 0
	if first, ok := earliestActionDate(trades); ok {
		weeksRunning = utils.DaysBetween(first, today) / 7
	}

	var profitPerWeek *float64
	if targetExitPrice != nil && totalSharesAssigned > 0 && weeksRunning > 0 {
		be := 0.0
		if breakEven != nil {
			be = *breakEven
		}
		ppw := ((*targetExitPrice - be) * float64(totalSharesAssigned)) / float64(weeksRunning)
		profitPerWeek = &ppw
	}

	return models.CampaignSummary{
		BreakEven:         breakEven,
		WeeksRunning:      weeksRunning,
		ProfitPerWeek:     profitPerWeek,
		TotalCredits:      totalCredits,
		RunningProfitLoss: runningProfitLoss,
		WeekPremium:       p.premium.WeeklyPremium(trades, today),
	}
}

// findLastOpenPut returns the SellPut trade with the latest date of action
// among those with no Assigned trade on the same contract line. When two
// share the latest date, the highest id wins.
func findLastOpenPut(trades []models.OptionTrade) *models.OptionTrade {
	assigned := make(map[ContractKey]bool)
	for _, t := range trades {
		if t.Action == models.Assigned {
			assigned[ContractKeyFor(t)] = true
		}
	}

	var last *models.OptionTrade
	for i := range trades {
		t := &trades[i]
		if t.Action != models.SellPut || assigned[ContractKeyFor(*t)] {
			continue
		}
		if last == nil {
			last = t
			continue
		}
		tDate := utils.TruncateToDay(t.DateOfAction)
		lastDate := utils.TruncateToDay(last.DateOfAction)
		if tDate.After(lastDate) || (tDate.Equal(lastDate) && t.ID > last.ID) {
			last = t
		}
	}
	return last
}

func earliestActionDate(trades []models.OptionTrade) (time.Time, bool) {
	if len(trades) == 0 {
		return time.Time{}, false
	}
	first := utils.TruncateToDay(trades[0].DateOfAction)
	for _, t := range trades[1:] {
		if d := utils.TruncateToDay(t.DateOfAction); d.Before(first) {
			first = d
		}
	}
	return first, true
}
