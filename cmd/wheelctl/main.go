// wheelctl is the command-line companion to the wheeltracker server: it
// imports brokerage CSV exports into the trade ledger and prints campaign
// summaries without going through the HTTP API.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(&importCmd{}, "")
	commander.Register(&summaryCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
