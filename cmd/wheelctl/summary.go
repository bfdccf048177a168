package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
)

type summaryCmd struct {
	campaign string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print campaign or portfolio summary" }
func (*summaryCmd) Usage() string {
	return `wheelctl summary [-campaign <name>]

  With -campaign, prints that campaign's break-even, weeks running and P&L.
  Without it, prints the portfolio-wide premium totals.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.campaign, "campaign", "", "Campaign to summarize. Defaults to the whole portfolio.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, summaryService := initApp()
	today := time.Now()

	if c.campaign == "" {
		summary, err := summaryService.GetPortfolioSummary(today)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Total net premium: $%.2f\n", summary.TotalNetPremium)
		fmt.Printf("This week's premium: $%.2f\n", summary.WeekPremium)
		return subcommands.ExitSuccess
	}

	summary, err := summaryService.GetCampaignSummary(c.campaign, today)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Campaign: %s\n", c.campaign)
	if summary.BreakEven != nil {
		fmt.Printf("Break-even: $%.2f\n", *summary.BreakEven)
	} else {
		fmt.Println("Break-even: n/a")
	}
	fmt.Printf("Weeks running: %d\n", summary.WeeksRunning)
	if summary.ProfitPerWeek != nil {
		fmt.Printf("Profit/week at target: $%.2f\n", *summary.ProfitPerWeek)
	} else {
		fmt.Println("Profit/week at target: n/a")
	}
	fmt.Printf("Total credits: $%.2f\n", summary.TotalCredits)
	fmt.Printf("Running P&L: $%.2f\n", summary.RunningProfitLoss)
	fmt.Printf("This week's premium: $%.2f\n", summary.WeekPremium)
	return subcommands.ExitSuccess
}
