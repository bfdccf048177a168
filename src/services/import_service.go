package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/username/wheeltracker/src/database"
	"github.com/username/wheeltracker/src/logger"
	"github.com/username/wheeltracker/src/models"
	"github.com/username/wheeltracker/src/parsers"
)

type importServiceImpl struct {
	parserOpts parsers.Options
	summaries  SummaryService
}

func NewImportService(parserOpts parsers.Options, summaries SummaryService) ImportService {
	return &importServiceImpl{
		parserOpts: parserOpts,
		summaries:  summaries,
	}
}

func (s *importServiceImpl) ProcessImport(file io.Reader, broker, campaign, symbol string) (*ImportResult, error) {
	startTime := time.Now()
	logger.L.Info("ProcessImport START", "broker", broker, "campaign", campaign, "symbol", symbol)

	parser, err := parsers.GetParser(broker, s.parserOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownBroker, err)
	}

	trades, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	if len(trades) == 0 {
		logger.L.Info("ProcessImport found no valid trades", "broker", broker)
		return &ImportResult{}, nil
	}

	if err := models.EnsureCampaign(database.DB, campaign, symbol, s.now()); err != nil {
		return nil, err
	}

	dbTx, err := database.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO option_trades (symbol, campaign, action, strike, delta, expiration_date, date_of_action, number_of_shares, credit, hash_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	result := &ImportResult{}
	for _, trade := range trades {
		// The grammar-derived campaign/symbol are only defaults; the caller's
		// values always win before persistence.
		trade.Campaign = campaign
		trade.Symbol = symbol

		_, err := stmt.Exec(trade.Symbol, trade.Campaign, string(trade.Action), trade.Strike, trade.Delta,
			trade.ExpirationDate.Format("2006-01-02"), trade.DateOfAction.Format("2006-01-02"),
			trade.NumberOfShares, trade.Credit, trade.HashID())
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
				logger.L.Debug("Skipping duplicate trade on import", "hash_id", trade.HashID())
				result.Skipped++
				continue
			}
			return nil, fmt.Errorf("error inserting trade (%s %s): %w", trade.Symbol, trade.Action, err)
		}
		result.Imported++
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing trades: %w", err)
	}

	s.summaries.InvalidateCache()

	logger.L.Info("ProcessImport END", "imported", result.Imported, "skipped", result.Skipped, "duration", time.Since(startTime))
	return result, nil
}

func (s *importServiceImpl) now() time.Time {
	if s.parserOpts.Now != nil {
		return s.parserOpts.Now()
	}
	return time.Now()
}
