package services

import (
	"errors"
	"io"
	"time"

	"github.com/username/wheeltracker/src/models"
)

var (
	ErrParsingFailed    = errors.New("parsing failed")
	ErrUnknownBroker    = errors.New("unknown broker")
	ErrCampaignNotFound = errors.New("campaign not found")
)

// ImportResult reports what a CSV import did.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportService runs the full import pipeline: broker grammar selection,
// normalization, campaign/symbol override and deduplicated persistence.
type ImportService interface {
	ProcessImport(file io.Reader, broker, campaign, symbol string) (*ImportResult, error)
}

// SummaryService serves cached derived summaries over the trade ledger.
type SummaryService interface {
	GetCampaignSummary(name string, today time.Time) (*models.CampaignSummary, error)
	GetPortfolioSummary(today time.Time) (*models.PortfolioSummary, error)
	// InvalidateCache drops all cached summaries; called after any write to
	// the ledger.
	InvalidateCache()
}
