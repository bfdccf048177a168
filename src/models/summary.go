package models

// CampaignSummary holds the derived values for one campaign's dashboard.
// BreakEven and ProfitPerWeek are nil when undefined for the campaign's
// current state (no open put and nothing assigned, or no target price).
type CampaignSummary struct {
	BreakEven         *float64 `json:"break_even,omitempty"`
	WeeksRunning      int      `json:"weeks_running"`
	ProfitPerWeek     *float64 `json:"profit_per_week,omitempty"`
	TotalCredits      float64  `json:"total_credits"`
	RunningProfitLoss float64  `json:"running_profit_loss"`
	WeekPremium       float64  `json:"week_premium"`
}

// PortfolioSummary holds the portfolio-wide aggregates.
type PortfolioSummary struct {
	TotalNetPremium float64 `json:"total_net_premium"`
	WeekPremium     float64 `json:"week_premium"`
}
