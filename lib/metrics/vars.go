package metrics

import (
	"github.com/go-kit/kit/metrics/discard"
)

var (
	Version  = discard.NewGauge()
	Election = NopElectionMetrics()
	Tally    = NopTallyMetrics()
	API      = NopAPIMetrics()
)
