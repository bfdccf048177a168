package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/patrickmn/go-cache"
	"github.com/username/wheeltracker/src/config"
	"github.com/username/wheeltracker/src/database"
	"github.com/username/wheeltracker/src/logger"
	"github.com/username/wheeltracker/src/parsers"
	"github.com/username/wheeltracker/src/processors"
	"github.com/username/wheeltracker/src/services"
)

// initApp loads config, logging and the database for CLI use, and wires the
// same service graph the server uses.
func initApp() (services.ImportService, services.SummaryService) {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	database.InitDB(config.Cfg.DatabasePath)

	reportCache := cache.New(config.Cfg.CacheExpiry, config.Cfg.CacheCleanup)
	premiumProcessor := processors.NewPremiumProcessor()
	summaryProcessor := processors.NewSummaryProcessor(premiumProcessor)
	summaryService := services.NewSummaryService(premiumProcessor, summaryProcessor, reportCache)
	importService := services.NewImportService(parsers.Options{
		Strict: config.Cfg.StrictImport,
		Now:    time.Now,
	}, summaryService)
	return importService, summaryService
}

type importCmd struct {
	broker   string
	file     string
	campaign string
	symbol   string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from a brokerage CSV export" }
func (*importCmd) Usage() string {
	return `wheelctl import -broker <etrade|robinhood> -file <path> -campaign <name> -symbol <ticker>

  Parses the broker's export, assigns every recognized option trade to the
  given campaign and symbol, and stores them in the ledger. Already-imported
  rows are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.broker, "broker", "", "Broker format of the export file.")
	f.StringVar(&c.file, "file", "", "Path to the CSV file.")
	f.StringVar(&c.campaign, "campaign", "", "Campaign name for the imported trades.")
	f.StringVar(&c.symbol, "symbol", "", "Underlying symbol for the imported trades.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.broker == "" || c.file == "" || c.campaign == "" || c.symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -broker, -file, -campaign and -symbol are all required.")
		return subcommands.ExitUsageError
	}

	importService, _ := initApp()

	file, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	result, err := importService.ProcessImport(file, c.broker, c.campaign, strings.ToUpper(c.symbol))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d trades (%d duplicates skipped) from %s for campaign %q (%s)\n",
		result.Imported, result.Skipped, c.file, c.campaign, strings.ToUpper(c.symbol))
	return subcommands.ExitSuccess
}
