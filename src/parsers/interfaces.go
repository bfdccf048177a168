package parsers

import (
	"io"
	"time"

	"github.com/username/wheeltracker/src/models"
)

// Parser converts one broker's raw export into canonical option trades.
// Rows that are not recognizable option transactions (stock trades,
// dividends, transfers) are dropped; only structural failures of the whole
// file return an error.
type Parser interface {
	Parse(file io.Reader) ([]models.OptionTrade, error)
}

// Options controls row-level failure behavior shared by all parsers.
//
// In the default lenient mode an unparsable date falls back to the current
// calendar date and malformed numbers default to zero. Strict mode skips
// the row instead, trading data loss for not silently mislabeling history.
type Options struct {
	Strict bool
	Now    func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}
