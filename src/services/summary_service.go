package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/wheeltracker/src/database"
	"github.com/username/wheeltracker/src/logger"
	"github.com/username/wheeltracker/src/models"
	"github.com/username/wheeltracker/src/processors"
	"github.com/username/wheeltracker/src/utils"
)

const (
	// Cache keys carry the computation date: "weeks running" and the weekly
	// window shift at midnight, so yesterday's entry must not serve today.
	ckCampaignSummary  = "res_campaign_summary_%s_%s"
	ckPortfolioSummary = "res_portfolio_summary_%s"
)

type summaryServiceImpl struct {
	premiumProcessor processors.PremiumProcessor
	summaryProcessor processors.SummaryProcessor
	reportCache      *cache.Cache
}

func NewSummaryService(
	premiumProcessor processors.PremiumProcessor,
	summaryProcessor processors.SummaryProcessor,
	reportCache *cache.Cache,
) SummaryService {
	return &summaryServiceImpl{
		premiumProcessor: premiumProcessor,
		summaryProcessor: summaryProcessor,
		reportCache:      reportCache,
	}
}

func (s *summaryServiceImpl) GetCampaignSummary(name string, today time.Time) (*models.CampaignSummary, error) {
	cacheKey := fmt.Sprintf(ckCampaignSummary, name, utils.FormatDate(today))
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for campaign summary", "campaign", name)
		return cached.(*models.CampaignSummary), nil
	}

	campaign, err := models.FetchCampaignByName(database.DB, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrCampaignNotFound, name)
		}
		return nil, fmt.Errorf("error fetching campaign %s: %w", name, err)
	}

	trades, err := models.FetchCampaignTrades(database.DB, campaign.Name, campaign.Symbol)
	if err != nil {
		return nil, err
	}

	summary := s.summaryProcessor.Summarize(trades, campaign.TargetExitPrice, today)
	s.reportCache.Set(cacheKey, &summary, cache.DefaultExpiration)
	logger.L.Info("Computed campaign summary", "campaign", name, "trades", len(trades))
	return &summary, nil
}

func (s *summaryServiceImpl) GetPortfolioSummary(today time.Time) (*models.PortfolioSummary, error) {
	cacheKey := fmt.Sprintf(ckPortfolioSummary, utils.FormatDate(today))
	if cached, found := s.reportCache.Get(cacheKey); found {
		logger.L.Debug("Cache hit for portfolio summary")
		return cached.(*models.PortfolioSummary), nil
	}

	trades, err := models.FetchAllTrades(database.DB)
	if err != nil {
		return nil, err
	}

	summary := &models.PortfolioSummary{
		TotalNetPremium: s.premiumProcessor.TotalNetPremium(trades),
		WeekPremium:     s.premiumProcessor.WeeklyPremium(trades, today),
	}
	s.reportCache.Set(cacheKey, summary, cache.DefaultExpiration)
	logger.L.Info("Computed portfolio summary", "trades", len(trades))
	return summary, nil
}

// InvalidateCache implements SummaryService. Summary keys are derived from
// campaign names, so a full flush is the reliable invalidation.
func (s *summaryServiceImpl) InvalidateCache() {
	s.reportCache.Flush()
	logger.L.Info("Invalidated summary caches")
}
