package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetParserKnownBrokers(t *testing.T) {
	for _, broker := range SupportedBrokers() {
		t.Run(broker, func(t *testing.T) {
			parser, err := GetParser(broker, Options{})
			require.NoError(t, err)
			assert.NotNil(t, parser)
		})
	}
}

func TestGetParserIsCaseInsensitive(t *testing.T) {
	parser, err := GetParser("ETrade", Options{})
	require.NoError(t, err)
	assert.NotNil(t, parser)
}

func TestGetParserUnknownBroker(t *testing.T) {
	_, err := GetParser("fidelity", Options{})
	require.Error(t, err)
	// The rejection names every supported broker.
	assert.Contains(t, err.Error(), "etrade")
	assert.Contains(t, err.Error(), "robinhood")
}
