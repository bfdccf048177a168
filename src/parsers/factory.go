package parsers

import (
	"fmt"
	"strings"

	"github.com/username/wheeltracker/src/parsers/etrade"
	"github.com/username/wheeltracker/src/parsers/robinhood"
)

// SupportedBrokers lists the broker identifiers GetParser accepts.
func SupportedBrokers() []string {
	return []string{"etrade", "robinhood"}
}

func GetParser(broker string, opts Options) (Parser, error) {
	switch strings.ToLower(broker) {
	case "etrade":
		return etrade.NewParser(opts.Strict, opts.now), nil
	case "robinhood":
		return robinhood.NewParser(opts.Strict, opts.now), nil
	default:
		return nil, fmt.Errorf("no parser available for broker %q (supported: %s)", broker, strings.Join(SupportedBrokers(), ", "))
	}
}
